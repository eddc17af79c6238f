package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvp-joe/layerlint/internal/mcp"
	"github.com/mvp-joe/layerlint/internal/naming"
)

var mcpCacheSize int

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start a Model Context Protocol server exposing the layerlint_preview
tool. Clients pass a document path under the project root and receive the
names a rename would produce; documents are never modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, nil)
		if err != nil {
			return err
		}

		registry, err := e.styleRegistry()
		if err != nil {
			return err
		}
		var resolver naming.StyleResolver
		if registry != nil {
			defer registry.Close()
			resolver = registry
		}

		srv, err := mcp.NewServer(&mcp.ServerConfig{
			RootDir:   e.root,
			Config:    e.cfg,
			Styles:    resolver,
			CacheSize: mcpCacheSize,
			Version:   Version,
		})
		if err != nil {
			return err
		}
		return srv.Serve(cmd.Context())
	},
}

func init() {
	mcpCmd.Flags().IntVar(&mcpCacheSize, "cache-size", mcp.DefaultDocumentCacheSize, "number of parsed documents to keep in memory")
	rootCmd.AddCommand(mcpCmd)
}
