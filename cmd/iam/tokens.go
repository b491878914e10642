package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/agenthands/iam/pkg/compiler/index"
	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/config"
	"github.com/agenthands/iam/pkg/stdlib"
)

func cmdTokens(cfg *config.Config, path string, stdout io.Writer) int {
	src, err := stdlib.NewFSSandbox("", cfg.MaxSourceSize).ReadSource(path)
	if err != nil {
		log.WithError(err).Error("failed to load program")
		return 1
	}

	tokens := lexer.Tokenize(src)
	loops := index.Build(tokens)

	table := tablewriter.NewWriter(stdout)
	table.SetHeader([]string{"#", "line", "kind", "text", "loop end"})
	table.SetAutoFormatHeaders(false)
	for i, tok := range tokens {
		text := tok.Text
		if tok.Kind == lexer.KindEOL {
			text = `\n`
		}
		end := ""
		if r, ok := loops[i]; ok {
			if r.Terminated(tokens) {
				end = strconv.Itoa(r.End)
			} else {
				end = "none"
			}
		}
		table.Append([]string{strconv.Itoa(i), strconv.Itoa(tok.Line), tok.Kind.String(), text, end})
	}
	table.Render()
	return 0
}
