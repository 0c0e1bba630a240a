package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/OFFIS-RIT/wikigraph/internal/server"
	"github.com/OFFIS-RIT/wikigraph/pkg/graph"

	"github.com/spf13/cobra"
)

func newCrawlCmd() *cobra.Command {
	var (
		depth   int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "crawl [company]",
		Short: "Run one traversal and write the resulting graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			client, err := server.NewGraphClient(cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("depth") {
				depth = client.DefaultDepth()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			return crawl(ctx, client, args[0], depth, out, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVar(&depth, "depth", graph.DefaultMaxDepth, "Maximum traversal depth")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the graph to this file instead of stdout")
	return cmd
}

// crawl runs one traversal, echoing log and progress messages to status and
// writing the final graph to out.
func crawl(ctx context.Context, client *graph.GraphClient, name string, depth int, out, status io.Writer) error {
	tr, err := client.NewTraversal(graph.NewTraversalParams{Root: name, MaxDepth: depth})
	if err != nil {
		return err
	}

	var result *graph.Event
	err = tr.Run(ctx, func(ev graph.Event) {
		switch ev.Status {
		case graph.EventProgress:
			fmt.Fprintf(status, "%3d%% %s\n", *ev.Percent, ev.Message)
		case graph.EventComplete:
			result = &ev
			fmt.Fprintln(status, ev.Message)
		default:
			fmt.Fprintln(status, ev.Message)
		}
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Data); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	return nil
}
