package sentence

import (
	"fmt"
	"strings"
)

// RoleKind selects which phrase template Generate uses.
type RoleKind int

const (
	// RolePrimary is the event's principal participant.
	RolePrimary RoleKind = iota
	// RoleSecondary is any other participant (witness, godparent, ...).
	RoleSecondary
)

// Generate renders the phrase template for a role in a language. The
// output is pure template text: placeholders ([P], [W], <[M]>, <[D]>,
// <[L]>) and inflection alternatives (<was|and [PO] were>) are resolved
// downstream by the consuming application, never here.
//
// The role label is embedded inline so multiple secondary roles render
// distinct text; a label of "Principal" (or a "Principal " prefix) is
// stripped since the principal needs no role qualifier.
func Generate(kind RoleKind, tagName, roleLabel string, lang Language) string {
	tag := strings.ToLower(tagName)
	role := strings.ToLower(roleLabel)

	if strings.HasPrefix(role, "principal ") {
		role = strings.TrimPrefix(role, "principal ")
	} else if role == "principal" {
		role = ""
	}

	if lang == LangFrench {
		return frenchPhrase(kind, tag, role)
	}
	return englishPhrase(kind, tag, role)
}

func englishPhrase(kind RoleKind, tag, role string) string {
	if kind == RolePrimary {
		if role != "" {
			return fmt.Sprintf("[P] <was|and [PO] were> %s at %s <[M]> <[D]> <[L]>", role, tag)
		}
		return fmt.Sprintf("[P] <was|and [PO] were> %s <[M]> <[D]> <[L]>", tag)
	}
	if role != "" {
		return fmt.Sprintf("[W] <was|and [WO] were> %s at %s <[M]> <[D]> <[L]>", role, tag)
	}
	return fmt.Sprintf("[W] witnessed the %s of [P] <and [PO]> <[M]> <[D]> <[L]>", tag)
}

func frenchPhrase(kind RoleKind, tag, role string) string {
	if kind == RolePrimary {
		if role != "" {
			return fmt.Sprintf("[P] <était|et [PO] étaient> %s à %s <[M]> <[D]> <[L]>", role, tag)
		}
		return fmt.Sprintf("[P] <était|et [PO] étaient> %s <[M]> <[D]> <[L]>", tag)
	}
	if role != "" {
		return fmt.Sprintf("[W] <était|et [WO] étaient> %s à %s <[M]> <[D]> <[L]>", role, tag)
	}
	return fmt.Sprintf("[W] a témoigné lors de %s de [P] <et [PO]> <[M]> <[D]> <[L]>", tag)
}
