package curriculum

// stageTemplate is the fixed theme of one stage position.
type stageTemplate struct {
	Title   string
	TitleFr string
	Color   string
}

// stageTemplates are indexed by stage index for every language.
var stageTemplates = [StageCount]stageTemplate{
	{Title: "Greetings & Introductions", TitleFr: "Salutations et présentations", Color: "amber"},
	{Title: "Polite & Formal Speech", TitleFr: "Politesse et formules", Color: "crimson"},
	{Title: "People & Family", TitleFr: "Personnes et famille", Color: "emerald"},
	{Title: "Everyday Nouns", TitleFr: "Noms du quotidien", Color: "midnight"},
	{Title: "Numbers & Time", TitleFr: "Nombres et temps", Color: "royal"},
	{Title: "Food & Daily Life", TitleFr: "Nourriture et vie quotidienne", Color: "saddle"},
	{Title: "Conversation & Review", TitleFr: "Conversation et révision", Color: "forest"},
}

// StageTheme returns the title, French title and color token of the stage at
// index. It panics if index is outside [0, StageCount).
func StageTheme(index int) (title, titleFr, color string) {
	t := stageTemplates[index]
	return t.Title, t.TitleFr, t.Color
}
