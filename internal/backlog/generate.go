package backlog

import (
	"fmt"
	"strings"
	"time"

	"bkl/internal/typeconfig"
)

// GenerateOptions parameterizes document generation.
type GenerateOptions struct {
	// ProjectName appears in the document title.
	ProjectName string
	// Now stamps the "Dernière mise à jour" line. Callers pass the current
	// time; tests pass a fixed one.
	Now time.Time
}

// Generate emits a well-formed backlog document for the given types, in the
// order they are passed (callers sort by Order first): a title block with a
// date stamp, a table of contents with one entry per type plus a trailing
// legend entry, one ordinal-numbered section per type carrying the
// "<!-- Type: ID -->" marker, and the fixed legend/conventions reference
// block.
//
// The output is exactly what Parse understands: re-parsing a freshly
// generated, still-empty document recovers the full type set through the
// type markers alone.
func Generate(types []typeconfig.TypeDefinition, opts GenerateOptions) string {
	var b strings.Builder

	name := opts.ProjectName
	if name == "" {
		name = "Projet"
	}

	b.WriteString("# 📋 BACKLOG — " + name + "\n\n")
	b.WriteString("> Dernière mise à jour : " + opts.Now.Format("2006-01-02") + "\n\n")
	b.WriteString("---\n\n")

	b.WriteString("## TABLE DES MATIÈRES\n\n")

	for i, t := range types {
		title := strings.ToUpper(t.Label)
		b.WriteString(fmt.Sprintf("%d. [%s](#%s)\n", i+1, title, anchor(i+1, title)))
	}

	legendOrdinal := len(types) + 1
	b.WriteString(fmt.Sprintf("%d. [LÉGENDE](#%s)\n\n", legendOrdinal, anchor(legendOrdinal, "LÉGENDE")))
	b.WriteString("---\n\n")

	for i, t := range types {
		b.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, strings.ToUpper(t.Label)))
		b.WriteString("<!-- Type: " + t.ID + " -->\n\n")
	}

	b.WriteString(fmt.Sprintf("## %d. LÉGENDE\n\n", legendOrdinal))
	b.WriteString(legendBlock)

	return b.String()
}

// anchor builds a GitHub-style slug for a numbered heading.
func anchor(ordinal int, title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")

	return fmt.Sprintf("%d-%s", ordinal, slug)
}

// legendBlock is the fixed conventions/severity/priority reference appended
// to every generated document. The parser preserves it verbatim as a raw
// section.
const legendBlock = `### Conventions

- **ID** : ` + "`TYPE-NNN`" + ` — identifiant unique, préfixé par le code du type
- **Titre** : ` + "`### TYPE-NNN | Titre`" + `
- **Métadonnées** : ` + "`**Clé:** valeur`" + `
- **Critères d'acceptation** : cases à cocher ` + "`- [ ]` / `- [x]`" + `

### Sévérité

- **P0** : Critique — blocage complet, correction immédiate
- **P1** : Majeure — fonctionnalité clé dégradée
- **P2** : Modérée — contournement possible
- **P3** : Mineure — gêne limitée
- **P4** : Cosmétique — polissage

### Priorité

- **Haute** : à traiter dans l'itération en cours
- **Moyenne** : planifié à court terme
- **Faible** : opportuniste

### Effort

- **XS** < 1h · **S** < 1j · **M** 1-3j · **L** 3-5j · **XL** > 5j
`
