package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/igfetch/config"
	"github.com/truemediaorg/igfetch/instagram"
	"github.com/truemediaorg/igfetch/model"
	"github.com/truemediaorg/igfetch/resolver"
	"github.com/truemediaorg/igfetch/shortcode"
)

var linksBase string

func init() {
	resolveCmd.Flags().StringVar(&linksBase, "links", "", "Print download proxy links against this base URL instead of JSON")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <shortcode|post URL>",
	Short: "Resolves a single post and prints its media",
	Long: `Resolves a single post and prints its normalized media as JSON.
With --links, prints one download proxy link per media item instead.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnvfile()
		cfg.ConfigureLogging()

		code, err := shortcode.FromInput(args[0])
		if err != nil {
			return err
		}

		service := resolver.NewService(instagram.NewClient(cfg.Instagram.Settings()))
		media, err := service.ResolvePost(cmd.Context(), code)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if linksBase == "" {
			encoded, err := json.MarshalIndent(map[string]model.Media{"mediaData": media}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		}

		links, err := downloadLinks(linksBase, code, media)
		if err != nil {
			return err
		}
		for _, link := range links {
			fmt.Fprintln(out, link)
		}
		return nil
	},
}

// downloadLinks builds one download proxy URL per item, named
// <shortcode>-<n>.<ext>.
func downloadLinks(base string, code string, media model.Media) ([]string, error) {
	baseURL, err := url.Parse(strings.TrimRight(base, "/") + "/api/download-proxy")
	if err != nil {
		return nil, errors.Wrap(err, "parse links base")
	}
	items, err := model.Items(media)
	if err != nil {
		return nil, err
	}
	links := make([]string, 0, len(items))
	for i, item := range items {
		q := url.Values{}
		q.Set("url", item.ItemURL())
		q.Set("filename", fmt.Sprintf("%s-%d.%s", code, i+1, model.Extension(item)))
		link := *baseURL
		link.RawQuery = q.Encode()
		links = append(links, link.String())
	}
	return links, nil
}
