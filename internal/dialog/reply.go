package dialog

// Choice is one selectable option offered to the user. Data carries the
// callback token for in-dialogue actions; URL choices open a link instead
// and never come back as actions.
type Choice struct {
	Label string
	Data  string
	URL   string
}

// Reply is the transport-neutral outcome of one dialogue turn: a text body
// plus rows of choices. The transport decides how to render it (inline
// keyboards on Telegram); the controller only decides what to offer.
type Reply struct {
	Text    string
	Choices [][]Choice
}

func callbackChoice(label, data string) Choice {
	return Choice{Label: label, Data: data}
}

func linkChoice(label, url string) Choice {
	return Choice{Label: label, URL: url}
}

func (r *Reply) addRow(choices ...Choice) {
	r.Choices = append(r.Choices, choices)
}
