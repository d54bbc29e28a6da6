package models

type MessageType int

const (
	User MessageType = iota
	Bot
	Typing
)

// Message is one entry of the conversation log
type Message struct {
	Content string
	Type    MessageType
}
