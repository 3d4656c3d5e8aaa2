package service

import (
	"strings"

	"draftdesk/internal/adapters/llm"
	detectdom "draftdesk/internal/services/api/detect/domain"
	"draftdesk/internal/services/api/drafts/domain"
)

var toneLine = map[string]string{
	domain.ToneFriendly: "Keep the tone warm and friendly.",
	domain.ToneFormal:   "Keep the tone formal and precise.",
	domain.ToneConcise:  "Keep it short, a few sentences at most.",
}

// buildRequest turns case notes and the detected domain into a chat request
// the reply is markdown so it renders with copy buttons in the console
func buildRequest(notes, tone string, det detectdom.DetectResult, o Options) llm.Request {
	var sys strings.Builder
	sys.WriteString("You draft replies to customers for a support agent. Answer in markdown.")
	if line, ok := toneLine[tone]; ok {
		sys.WriteString(" ")
		sys.WriteString(line)
	}
	if det.Matched && det.Tag != "" {
		sys.WriteString("\nThe case concerns ")
		sys.WriteString(det.Tag)
		sys.WriteString(".")
		if len(det.Links) > 0 {
			sys.WriteString(" Point to these references where they help:")
			for _, l := range det.Links {
				sys.WriteString("\n- ")
				sys.WriteString(l.Title)
				sys.WriteString(": ")
				sys.WriteString(l.URL)
			}
		}
	}

	return llm.Request{
		Model:       o.Model,
		System:      sys.String(),
		Messages:    []llm.Message{{Role: "user", Content: notes}},
		Temperature: o.Temperature,
		MaxTokens:   o.MaxTokens,
	}
}
