package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/local/ideagen/internal/generator"
	"github.com/local/ideagen/internal/language"
)

// csvHeader is the fixed column order of the CSV export. Prompts collapse
// into one field joined by promptDelim.
var csvHeader = []string{
	"Data", "Título", "Gancho", "Frase de impacto", "Ideia central",
	"CTA", "Cenário visual", "Trilha/Efeitos", "Verso", "Prompts vídeo",
}

const promptDelim = " || "

// CSV serializes a batch with standard quoting: any field containing a
// comma, quote or newline is wrapped in double quotes with inner quotes
// doubled, so a stock CSV reader round-trips every field.
func CSV(b generator.Batch) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(csvHeader)
	for _, it := range b.Ideas {
		_ = w.Write([]string{
			it.Date, it.Title, it.Hook, it.Impact, it.Body,
			it.CTA, it.Visual, it.Track, it.Verse,
			strings.Join(it.Prompts, promptDelim),
		})
	}
	w.Flush()
	return sb.String()
}

// JSON pretty-prints the batch as an array of Idea records; each record
// carries the shared batch date in its "data" field.
func JSON(b generator.Batch) ([]byte, error) {
	return json.MarshalIndent(b.Ideas, "", "  ")
}

// Text renders one labeled block per Idea, blocks separated by a blank line.
// Labels follow the batch language.
func Text(b generator.Batch) string {
	blocks := make([]string, 0, len(b.Ideas))
	for i, it := range b.Ideas {
		var sb strings.Builder
		fmt.Fprintf(&sb, "#%d — %s\n", i+1, it.Title)
		fmt.Fprintf(&sb, "Gancho: %s\n", it.Hook)
		fmt.Fprintf(&sb, "Impacto: %s\n", it.Impact)
		fmt.Fprintf(&sb, "Ideia:\n%s\n\n", it.Body)
		fmt.Fprintf(&sb, "CTA: %s\n", it.CTA)
		fmt.Fprintf(&sb, "Visual: %s\n", it.Visual)
		fmt.Fprintf(&sb, "Trilha: %s", it.Track)
		if it.Verse != "" {
			fmt.Fprintf(&sb, "\nVerso: %s", it.Verse)
		}
		if len(it.Prompts) > 0 {
			if b.Lang == language.PT {
				sb.WriteString("\n\nPrompts para construir o vídeo:\n- ")
			} else {
				sb.WriteString("\n\nPrompts to build the video:\n- ")
			}
			sb.WriteString(strings.Join(it.Prompts, "\n- "))
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Download filenames, keyed by the batch date.
func CSVFilename(date string) string  { return fmt.Sprintf("ideias_%s.csv", date) }
func JSONFilename(date string) string { return fmt.Sprintf("ideias_%s.json", date) }
func TextFilename(date string) string { return fmt.Sprintf("ideias_%s.txt", date) }
