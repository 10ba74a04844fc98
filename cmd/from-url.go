package cmd

/**
 * from-url.go - pull config from url and run
 */

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

/* Parsed options */
var urlTimeout time.Duration

/**
 * Add command
 */
func init() {

	FromUrlCmd.Flags().DurationVarP(&urlTimeout, "timeout", "t", 10*time.Second, "Config download timeout")

	RootCmd.AddCommand(FromUrlCmd)
}

/**
 * FromUrlCmd command
 */
var FromUrlCmd = &cobra.Command{
	Use:   "from-url <url>",
	Short: "Start using config from URL",
	Run: func(cmd *cobra.Command, args []string) {

		if len(args) != 1 {
			cmd.Help()
			return
		}

		content, err := fetch(args[0], urlTimeout)
		if err != nil {
			log.Fatal(err)
		}

		run(content, struct {
			Kind string `json:"kind"`
			Url  string `json:"url"`
		}{"url", args[0]})
	},
}

/**
 * Downloads config body, non 2xx answers are errors
 */
func fetch(url string, timeout time.Duration) ([]byte, error) {

	client := http.Client{Timeout: timeout}
	res, err := client.Get(url)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, res.Status)
	}

	return io.ReadAll(res.Body)
}
