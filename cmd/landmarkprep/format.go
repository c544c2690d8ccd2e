package main

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

func formatCount[T ~int | ~int64](n T) string {
	return numberPrinter.Sprintf("%d", int64(n))
}

func formatFloat(v float64) string {
	return numberPrinter.Sprintf("%.1f", v)
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func isTerminal(w io.Writer) bool {
	fd, ok := writerFD(w)
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
