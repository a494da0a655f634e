package categories

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// TokensFromString splits a comma-separated token list, trimming whitespace
// and dropping empty entries.
func TokensFromString(s string) []string {
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// TokensFromFile reads one token per line, ignoring blank lines.
func TokensFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open categories file: %w", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			tokens = append(tokens, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	return tokens, nil
}

// DefaultTokens returns the category names scraped when the caller supplies
// none.
func DefaultTokens() []string {
	return []string{
		"Últimas notícias",
		"Colunistas",
		"Brasil",
		"DF",
		"SP",
		"Mundo",
		"Entretenimento",
		"Vida & Estilo",
		"Saúde",
		"Ciência",
		"Esportes",
		"Especiais",
	}
}
