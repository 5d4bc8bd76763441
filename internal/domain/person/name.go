package person

import (
	"strings"

	"github.com/arc-self/person-engine/internal/domainerr"
)

// NamingConvention selects the cultural rendering used by DisplayPolicyCultural.
type NamingConvention string

const (
	Western    NamingConvention = "western"
	Spanish    NamingConvention = "spanish"
	EastAsian  NamingConvention = "east_asian"
	Patronymic NamingConvention = "patronymic"
	Mononymic  NamingConvention = "mononymic"
	OtherNaming NamingConvention = "other"
)

// DisplayPolicy selects one of the five pure rendering functions over a Name.
type DisplayPolicy string

const (
	DisplayFormal       DisplayPolicy = "formal"
	DisplayInformal     DisplayPolicy = "informal"
	DisplayLegal        DisplayPolicy = "legal"
	DisplayAlphabetical DisplayPolicy = "alphabetical"
	DisplayCultural     DisplayPolicy = "cultural"
)

// Name is the PersonName value object of spec.md §3. It is immutable once
// constructed; every "mutation" returns a new Name built from a fresh
// NameBuilder.
type Name struct {
	GivenNames      []string
	FamilyNames     []string
	Patronymic      *string
	Matronymic      *string
	Prefixes        []string
	Suffixes        []string
	PreferredForm   *string
	NamingConvention NamingConvention
}

// Validate enforces the invariant: at least one non-empty string across
// given ∪ family ∪ patronymic.
func (n Name) Validate() error {
	for _, g := range n.GivenNames {
		if strings.TrimSpace(g) != "" {
			return nil
		}
	}
	for _, f := range n.FamilyNames {
		if strings.TrimSpace(f) != "" {
			return nil
		}
	}
	if n.Patronymic != nil && strings.TrimSpace(*n.Patronymic) != "" {
		return nil
	}
	return domainerr.Validation("a person name must have at least one non-empty given, family, or patronymic component")
}

// Display renders the name per the requested policy. Display policies are
// pure functions over the name's components; Cultural additionally branches
// on NamingConvention.
func (n Name) Display(policy DisplayPolicy) string {
	switch policy {
	case DisplayInformal:
		return n.formatInformal()
	case DisplayLegal:
		return n.formatLegal()
	case DisplayAlphabetical:
		return n.formatAlphabetical()
	case DisplayCultural:
		return n.formatCultural()
	default:
		return n.formatFormal()
	}
}

func (n Name) formatFormal() string {
	parts := make([]string, 0, len(n.Prefixes)+len(n.GivenNames)+len(n.FamilyNames)+len(n.Suffixes)+2)
	parts = append(parts, n.Prefixes...)
	parts = append(parts, n.GivenNames...)
	if n.Patronymic != nil {
		parts = append(parts, *n.Patronymic)
	}
	if n.Matronymic != nil {
		parts = append(parts, *n.Matronymic)
	}
	parts = append(parts, n.FamilyNames...)
	parts = append(parts, n.Suffixes...)
	return strings.Join(nonEmpty(parts), " ")
}

func (n Name) formatInformal() string {
	if n.PreferredForm != nil && strings.TrimSpace(*n.PreferredForm) != "" {
		return *n.PreferredForm
	}
	if len(n.GivenNames) > 0 {
		return n.GivenNames[0]
	}
	if len(n.FamilyNames) > 0 {
		return n.FamilyNames[0]
	}
	if n.Patronymic != nil {
		return *n.Patronymic
	}
	return "Unknown"
}

func (n Name) formatLegal() string {
	var parts []string
	if len(n.FamilyNames) > 0 {
		parts = append(parts, strings.Join(n.FamilyNames, " "))
	}
	if len(parts) > 0 && len(n.GivenNames) > 0 {
		parts[0] += ","
	}
	parts = append(parts, n.GivenNames...)
	return strings.Join(parts, " ")
}

func (n Name) formatAlphabetical() string {
	var b strings.Builder
	if len(n.FamilyNames) > 0 {
		b.WriteString(strings.Join(n.FamilyNames, " "))
		b.WriteString(", ")
	}
	for i, given := range n.GivenNames {
		if given == "" {
			continue
		}
		b.WriteRune([]rune(given)[0])
		b.WriteByte('.')
		if i < len(n.GivenNames)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (n Name) formatCultural() string {
	switch n.NamingConvention {
	case Spanish:
		parts := append([]string{}, n.GivenNames...)
		if len(n.FamilyNames) >= 2 {
			parts = append(parts, n.FamilyNames[0]+" y "+n.FamilyNames[1])
		} else {
			parts = append(parts, n.FamilyNames...)
		}
		return strings.Join(nonEmpty(parts), " ")
	case EastAsian:
		return strings.Join(n.FamilyNames, "") + strings.Join(n.GivenNames, "")
	case Patronymic:
		parts := append([]string{}, n.GivenNames...)
		if n.Patronymic != nil {
			parts = append(parts, *n.Patronymic)
		}
		return strings.Join(nonEmpty(parts), " ")
	case Mononymic:
		if len(n.GivenNames) > 0 {
			return n.GivenNames[0]
		}
		if len(n.FamilyNames) > 0 {
			return n.FamilyNames[0]
		}
		return "Unknown"
	case Western, OtherNaming, "":
		return n.formatFormal()
	default:
		return n.formatFormal()
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String renders the name using the Formal policy, matching the original's
// Display impl which delegates to the name's own display_name().
func (n Name) String() string { return n.Display(DisplayFormal) }

// NameBuilder is the fluent constructor surface for Name, matching
// original_source's PersonNameBuilder.
type NameBuilder struct {
	n Name
}

func NewNameBuilder() *NameBuilder {
	return &NameBuilder{n: Name{NamingConvention: Western}}
}

func (b *NameBuilder) Given(names ...string) *NameBuilder {
	b.n.GivenNames = append(b.n.GivenNames, names...)
	return b
}

func (b *NameBuilder) Family(names ...string) *NameBuilder {
	b.n.FamilyNames = append(b.n.FamilyNames, names...)
	return b
}

func (b *NameBuilder) Patronymic(p string) *NameBuilder {
	b.n.Patronymic = &p
	return b
}

func (b *NameBuilder) Matronymic(m string) *NameBuilder {
	b.n.Matronymic = &m
	return b
}

func (b *NameBuilder) Prefixes(p ...string) *NameBuilder {
	b.n.Prefixes = append(b.n.Prefixes, p...)
	return b
}

func (b *NameBuilder) Suffixes(s ...string) *NameBuilder {
	b.n.Suffixes = append(b.n.Suffixes, s...)
	return b
}

func (b *NameBuilder) PreferredForm(p string) *NameBuilder {
	b.n.PreferredForm = &p
	return b
}

func (b *NameBuilder) Convention(c NamingConvention) *NameBuilder {
	b.n.NamingConvention = c
	return b
}

func (b *NameBuilder) Build() (Name, error) {
	if err := b.n.Validate(); err != nil {
		return Name{}, err
	}
	return b.n, nil
}
