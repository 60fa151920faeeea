package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	article "github.com/glabrego/remy/internal/render/article"
)

type renderOpts struct {
	plain    bool   // print text without ANSI styling
	url      string // article URL used to pick site cleanup rules
	maxDepth int
	maxLines int
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render an HTML fragment as terminal text",
		Long:  `Render reads an HTML fragment from a file, or stdin when the argument is "-" or missing, and prints it the way the reader shows article bodies.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			return runRender(cmd.InOrStdin(), cmd.OutOrStdout(), src, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print plain text without styling")
	cmd.Flags().StringVar(&opts.url, "url", "", "article URL for site-specific cleanup")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", article.DefaultOptions.MaxDepth, "maximum element nesting")
	cmd.Flags().IntVar(&opts.maxLines, "max-lines", article.DefaultOptions.MaxLines, "maximum output lines")

	return cmd
}

func runRender(stdin io.Reader, out io.Writer, src string, opts renderOpts) error {
	raw, err := readSource(stdin, src)
	if err != nil {
		return err
	}

	lines, err := article.RenderHTML(raw, article.Options{MaxDepth: opts.maxDepth, MaxLines: opts.maxLines})
	if err != nil {
		return fmt.Errorf("render %s: %w", src, err)
	}
	if opts.url != "" {
		lines = article.Cleanup(lines, opts.url)
	}

	var text []string
	if opts.plain {
		text = article.PlainLines(lines)
	} else {
		text = article.ANSILines(lines)
	}
	// The renderer ends spaced blocks with a spacer; a terminal doesn't need it.
	for len(text) > 0 && text[len(text)-1] == "" {
		text = text[:len(text)-1]
	}
	if len(text) == 0 {
		return nil
	}
	_, err = io.WriteString(out, strings.Join(text, "\n")+"\n")
	return err
}

func readSource(stdin io.Reader, src string) (string, error) {
	if src == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}
	return string(data), nil
}
