package vm_test

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/agenthands/iam/pkg/compiler/index"
	"github.com/agenthands/iam/pkg/compiler/lexer"
	"github.com/agenthands/iam/pkg/core/env"
	"github.com/agenthands/iam/pkg/vm"
)

func BenchmarkForLoop(b *testing.B) {
	// for i 0 1000
	// set a[i] i
	// end
	tokens := lexer.Tokenize("array a 1000\nfor i 0 1000\nset a[i] i\nend\n")
	logger, _ := test.NewNullLogger()

	m := vm.New(tokens, nil)
	m.Out = io.Discard
	m.Diag = logger

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Reset()
		m.Env = env.New()
		if err := m.Run(10000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoopIndex(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("for i 0 1\nprint i\nend\n")
	}
	tokens := lexer.Tokenize(sb.String())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if loops := index.Build(tokens); len(loops) != 200 {
			b.Fatalf("indexed %d loops", len(loops))
		}
	}
}
