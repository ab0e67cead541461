package idea

import "github.com/local/ideagen/internal/language"

// Template pools. CTAs, impact lines, hooks and title prefixes are
// per-language; visual cues and soundtrack cues are scene descriptions and
// deliberately shared across languages. Angles are topical categories.

var ctasPT = []string{
	"Comente AMÉM",
	"Escreva EU CREIO",
	"Declare: DEUS PROVÊ",
	"Compartilhe com alguém que precisa",
	"Comente: EU ENTREGO",
	"Escreva: NOVO TEMPO",
	"Comente: A BATALHA É DO SENHOR",
	"Escreva: O TEMPO DE DEUS É PERFEITO",
	"Declare: MINHA CASA É DO SENHOR",
}

var ctasEN = []string{
	"Comment AMEN",
	"Write I BELIEVE",
	"Declare: GOD PROVIDES",
	"Share with someone who needs this",
	"Comment: I SURRENDER",
	"Write: NEW SEASON",
	"Comment: THE BATTLE BELONGS TO THE LORD",
	"Write: GOD'S TIMING IS PERFECT",
	"Declare: MY HOUSE BELONGS TO THE LORD",
}

var visuals = []string{
	"Amanhecer / céu aberto / luz suave",
	"Mar calmo / câmera lenta / ondas",
	"Pessoa orando em contraluz",
	"Bíblia aberta com feixe de luz",
	"Igreja vazia / eco sutil",
	"Janela com chuva / esperança",
	"Mãos em posição de fé",
	"Cidade à noite / silêncio e paz",
	"Montanhas / neblina leve",
}

var tracks = []string{
	"Piano emocional + pads",
	"Cordas suaves + ambiente",
	"Piano solo reverberado",
	"Guitarra ambiente + pads",
	"Violoncelo lento + sinos suaves",
}

var angles = []string{
	"financeiro", "cura", "família", "propósito/chamado", "recomeço",
	"proteção/livramento", "casamento/reconciliação", "ansiedade/descanso", "deserto/processo",
}

var impactPT = []string{
	"DEUS ESTÁ ME ERGUENDO.",
	"EU CREIO QUE O MILAGRE JÁ COMEÇOU.",
	"O QUE É MEU, VOLTARÁ TRANSFORMADO.",
	"DEUS ABRE PORTAS QUE NINGUÉM FECHA.",
	"NÃO ESTOU SÓ: O CÉU ME SUSTENTA.",
	"DEUS VAI USAR ISSO PARA O MEU BEM.",
	"HOJE EU ESCOLHO CAMINHAR PELA FÉ.",
}

var impactEN = []string{
	"GOD IS LIFTING ME UP.",
	"MY MIRACLE IS ALREADY IN MOTION.",
	"WHAT IS MINE WILL RETURN TRANSFORMED.",
	"GOD OPENS DOORS NO ONE CAN SHUT.",
	"I AM NOT ALONE: HEAVEN HOLDS ME.",
	"GOD WILL TURN THIS FOR MY GOOD.",
	"TODAY I CHOOSE TO WALK BY FAITH.",
}

var hooksPT = []string{
	"Você precisava ler isso hoje.",
	"Talvez isso seja o sinal que você pediu a Deus.",
	"Pare e leia: resposta de oração.",
}

var hooksEN = []string{
	"You needed to read this today.",
	"Maybe this is the sign you asked for.",
	"Pause and read: prayer answered.",
}

var titlePrefixPT = []string{
	"Deus te diz:",
	"Palavra de hoje:",
	"Confie no tempo de Deus:",
}

var titlePrefixEN = []string{
	"God says:",
	"Today's word:",
	"Trust God's timing:",
}

// Fixed body fragments per language.
const (
	introTailPT = "Às vezes, Deus silencia para ajustar o nosso olhar."
	introTailEN = "Sometimes, God stays silent to realign our sight."

	practicePT = "Quando o coração cansa, pratique fé em detalhes simples. Faça o possível e entregue o impossível."
	practiceEN = "When the heart grows tired, practice faith in small details. Do what’s possible and surrender the rest."

	closingPT = "Nada é em vão no tempo de Deus. Continue firme, mesmo que em passos curtos."
	closingEN = "Nothing is wasted in God’s timing. Keep walking, even in small steps."

	fallbackBasePT = "Quando a ansiedade aperta, retome a respiração e a oração simples."
	fallbackBaseEN = "When anxiety tightens, return to breathing and a simple prayer."
)

func ctas(lang language.Lang) []string {
	if lang == language.PT {
		return ctasPT
	}
	return ctasEN
}

func impacts(lang language.Lang) []string {
	if lang == language.PT {
		return impactPT
	}
	return impactEN
}

func hooks(lang language.Lang) []string {
	if lang == language.PT {
		return hooksPT
	}
	return hooksEN
}

func titlePrefixes(lang language.Lang) []string {
	if lang == language.PT {
		return titlePrefixPT
	}
	return titlePrefixEN
}
