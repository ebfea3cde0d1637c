package state

import tele "gopkg.in/telebot.v4"

var stepHandlers = map[Step]tele.HandlerFunc{}

// RegisterHandler associates a flow step with its message handler.
func RegisterHandler(st Step, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	stepHandlers[st] = h
}
