package idea

import (
	"fmt"

	"github.com/local/ideagen/internal/language"
)

type promptFields struct {
	Lang   language.Lang
	Title  string
	Hook   string
	Impact string
	Angle  string
	Visual string
	Track  string
	Verse  string
}

// buildVideoPrompts derives the ordered production instruction list for one
// Idea: script/voice, footage, editing, music, on-screen text, thumbnail and
// caption, always in the request language. The field order is fixed.
func buildVideoPrompts(f promptFields) []string {
	if f.Lang == language.PT {
		caption := "Compartilhe com quem precisa"
		if f.Verse != "" {
			caption = "Ref. " + f.Verse
		}
		return []string{
			fmt.Sprintf(`ROTEIRO/VOZ: Crie uma locução de 20–30 segundos, tom calmo e confiante, iniciando com "%s". Tema: %s. Faça a transição da reflexão para a esperança e conclua com uma ação de fé realista.`, f.Hook, f.Angle),
			fmt.Sprintf(`IMAGENS/B-ROLL: Liste 6 a 8 planos curtos (2–3s) que simbolizem "%s". Inclua detalhes, planos médios e um plano amplo.`, f.Visual),
			fmt.Sprintf(`EDIÇÃO: Corte no ritmo da trilha "%s", fade-in de 8 quadros, correção fria e granulação leve.`, f.Track),
			`MÚSICA: Trilha ambiente com piano e pads suaves, entre 70–80 BPM, sem vocais.`,
			fmt.Sprintf(`TEXTO NA TELA: Mostre o título "%s" e depois destaque a frase "%s".`, f.Title, f.Impact),
			fmt.Sprintf(`THUMBNAIL: Fundo desfocado e tipografia forte que comunique "%s".`, f.Angle),
			fmt.Sprintf(`LEGENDA/CTA: Legenda curta que inspire entrega e fé (ex.: "%s").`, caption),
		}
	}

	caption := "Share with who needs this"
	if f.Verse != "" {
		caption = "Ref. " + f.Verse
	}
	return []string{
		fmt.Sprintf(`SCRIPT/VOICE: Write a 20–30 second calm, confident voiceover starting with "%s". Theme: %s. Move from reflection to hope, end with a grounded act of faith.`, f.Hook, f.Angle),
		fmt.Sprintf(`FOOTAGE/B-ROLL: List 6–8 short shots (2–3s) that represent "%s". Include details, medium, and wide shots.`, f.Visual),
		fmt.Sprintf(`EDITING: Cut on the beat of "%s", 8-frame fade-in, cool tone, slight grain.`, f.Track),
		`MUSIC: Ambient piano + soft pads, 70–80 BPM, no vocals.`,
		fmt.Sprintf(`ON-SCREEN TEXT: Display the title "%s", then highlight "%s".`, f.Title, f.Impact),
		fmt.Sprintf(`THUMBNAIL: Blurred background, bold typography evoking "%s".`, f.Angle),
		fmt.Sprintf(`CAPTION/CTA: Short caption inviting surrender and faith (e.g. "%s").`, caption),
	}
}
