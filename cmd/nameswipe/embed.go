package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ehrlich-b/nameswipe/internal/embedding"
	"github.com/spf13/cobra"
)

func embedCmd(a *app) *cobra.Command {
	var textFlag string
	var formatFlag string
	var warm bool
	var concurrency int

	cmd := &cobra.Command{
		Use:   "embed [text]",
		Short: "Embed text with the configured provider",
		Long:  "Embed text into vectors. Accepts text as argument, -t flag, or stdin (one text per line). With --warm, embeds every sample template into the vector cache instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			oracle, err := a.distanceOracle()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if warm {
				texts := a.lib.All()
				if err := oracle.Warm(texts, concurrency); err != nil {
					return fmt.Errorf("warm cache: %w", err)
				}
				n, err := a.store.CountVectors(oracle.Name())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s templates embedded, %s vectors cached for %s\n",
					humanize.Comma(int64(len(texts))), humanize.Comma(int64(n)), oracle.Name())
				return nil
			}

			// Collect texts: arg > flag > stdin
			var texts []string
			if len(args) > 0 {
				texts = append(texts, strings.Join(args, " "))
			} else if textFlag != "" {
				texts = append(texts, textFlag)
			} else if piped(a.in) {
				texts, err = readLines(a.in)
				if err != nil {
					return err
				}
			}

			if len(texts) == 0 {
				return fmt.Errorf("no text provided: use argument, -t flag, or pipe via stdin")
			}

			vecs, err := oracle.Embed(texts)
			if err != nil {
				return fmt.Errorf("embed: %w", err)
			}

			switch formatFlag {
			case "json":
				enc := json.NewEncoder(out)
				for i, v := range vecs {
					res := embedResult{
						Text:      texts[i],
						Embedding: v,
						Dims:      len(v),
						Model:     oracle.Name(),
					}
					if err := enc.Encode(res); err != nil {
						return fmt.Errorf("encode: %w", err)
					}
				}
			case "raw":
				for _, v := range vecs {
					out.Write(embedding.VecAsBytes(v))
				}
			default:
				return fmt.Errorf("unknown format %q: use json or raw", formatFlag)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&textFlag, "text", "t", "", "text to embed")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "output format: json, raw")
	cmd.Flags().BoolVar(&warm, "warm", false, "embed all sample templates into the vector cache")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "batches embedded in parallel with --warm")

	return cmd
}

type embedResult struct {
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
	Dims      int       `json:"dims"`
	Model     string    `json:"model"`
}

// piped reports whether r has data to read without a user typing it.
func piped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice == 0
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
