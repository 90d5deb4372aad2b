package mq

import (
	"encoding/json"
	"fmt"
)

// MailingMessage - конверт исходящего сообщения для внешнего бот-воркера
type MailingMessage struct {
	Seed    int64   `json:"seed"`
	VkIDs   []int64 `json:"vkIds"`
	Message Message `json:"message"`
}

type Message struct {
	Text     string    `json:"text"`
	Keyboard *Keyboard `json:"keyboard,omitempty"`
}

type KeyboardType string

const (
	KeyboardInline   KeyboardType = "inline"
	KeyboardStandard KeyboardType = "standard"
)

type Keyboard struct {
	Type    KeyboardType     `json:"type"`
	OneTime bool             `json:"oneTime"`
	Items   []KeyboardButton `json:"items"`
}

type ButtonKind string

const (
	ButtonText     ButtonKind = "text"
	ButtonCallback ButtonKind = "callback"
	ButtonOpenLink ButtonKind = "open_link"
)

type ButtonColor string

const (
	ColorPrimary   ButtonColor = "primary"
	ColorSecondary ButtonColor = "secondary"
	ColorNegative  ButtonColor = "negative"
	ColorPositive  ButtonColor = "positive"
)

// KeyboardButton - размеченное объединение вариантов кнопок.
// Дискриминатор kind всегда попадает в сериализацию как поле type;
// color есть только у text/callback, link - только у open_link.
type KeyboardButton struct {
	Kind    ButtonKind
	Label   string
	Payload string
	Color   ButtonColor
	Link    string
}

type textButtonJSON struct {
	Type    ButtonKind  `json:"type"`
	Label   string      `json:"label"`
	Payload string      `json:"payload"`
	Color   ButtonColor `json:"color"`
}

type linkButtonJSON struct {
	Type    ButtonKind `json:"type"`
	Label   string     `json:"label"`
	Payload string     `json:"payload"`
	Link    string     `json:"link"`
}

func (b KeyboardButton) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case ButtonText, ButtonCallback:
		return json.Marshal(textButtonJSON{Type: b.Kind, Label: b.Label, Payload: b.Payload, Color: b.Color})
	case ButtonOpenLink:
		return json.Marshal(linkButtonJSON{Type: b.Kind, Label: b.Label, Payload: b.Payload, Link: b.Link})
	default:
		return nil, fmt.Errorf("unknown keyboard button kind %q", b.Kind)
	}
}

func (b *KeyboardButton) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    ButtonKind  `json:"type"`
		Label   string      `json:"label"`
		Payload string      `json:"payload"`
		Color   ButtonColor `json:"color"`
		Link    string      `json:"link"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case ButtonText, ButtonCallback, ButtonOpenLink:
	default:
		return fmt.Errorf("unknown keyboard button kind %q", raw.Type)
	}
	*b = KeyboardButton{Kind: raw.Type, Label: raw.Label, Payload: raw.Payload, Color: raw.Color, Link: raw.Link}
	return nil
}

// HumanMessage - входящее событие от внешнего воркера.
// Потребляются только fromId и text.
type HumanMessage struct {
	Type   string `json:"type"`
	FromID int64  `json:"from_id"`
	PeerID int64  `json:"peer_id"`
	Text   string `json:"text"`
}
