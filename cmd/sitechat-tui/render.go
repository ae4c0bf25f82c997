// ABOUTME: Terminal rendering of conversations and messages
// ABOUTME: Colors roles and renders markup spans without interpolating raw markup

package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/sitechat/sitechat/internal/markup"
	"github.com/sitechat/sitechat/internal/session"
)

var (
	userLabel  = color.New(color.FgCyan, color.Bold)
	modelLabel = color.New(color.FgMagenta, color.Bold)
	boldText   = color.New(color.Bold)
	codeText   = color.New(color.FgYellow)
	linkText   = color.New(color.FgBlue, color.Underline)
	dimText    = color.New(color.Faint)
)

func roleLabel(r session.Role) string {
	if r == session.RoleUser {
		return userLabel.Sprint("You")
	}
	return modelLabel.Sprint("Assistant")
}

// printMessage renders one message: role label, then the text as
// structured spans. Link targets print after the label in dim text.
func printMessage(msg session.Message) {
	fmt.Printf("%s\n", roleLabel(msg.Role))
	for _, line := range markup.Render(msg.Text) {
		for _, span := range line {
			switch span.Kind {
			case markup.KindBold:
				boldText.Print(span.Text)
			case markup.KindCode:
				codeText.Print(span.Text)
			case markup.KindLink:
				linkText.Print(span.Text)
				dimText.Printf(" (%s)", span.Href)
			default:
				fmt.Print(span.Text)
			}
		}
		fmt.Println()
	}
	fmt.Println()
}

// printConversation renders the full transcript of a conversation.
func printConversation(conv session.Conversation) {
	fmt.Println()
	dimText.Printf("--- %s ---\n\n", conv.Title)
	for _, msg := range conv.Messages {
		printMessage(msg)
	}
}

// printList renders the conversation list with the active one marked.
func printList(snap session.Snapshot) {
	fmt.Println()
	for i, conv := range snap.Conversations {
		marker := " "
		if conv.ID == snap.ActiveID {
			marker = "*"
		}
		fmt.Printf("%s %2d. %s (%d messages)\n", marker, i+1, conv.Title, len(conv.Messages))
	}
	fmt.Println()
}
