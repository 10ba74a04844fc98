package core

/**
 * target.go - backend target
 */

/**
 * Target host and port
 */
type Target struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

/**
 * Get target full address
 * host:port
 */
func (this *Target) Address() string {
	return this.Host + ":" + this.Port
}

/**
 * To String conversion
 */
func (this *Target) String() string {
	return this.Address()
}
