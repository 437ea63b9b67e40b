// Package calendar generates the Portuguese public holiday calendar for a year and a
// workplace location.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Location identifies where a contract is worked. Region decides regional holidays and
// Municipality decides the municipal one.
type Location struct {
	Municipality string `yaml:"municipality" json:"municipality"`
	District     string `yaml:"district" json:"district"`
	Region       string `yaml:"region" json:"region"`
}

// Regions
const (
	RegionNorth    = "Norte"
	RegionCentre   = "Centro"
	RegionLisbon   = "Lisboa e Vale do Tejo"
	RegionAlentejo = "Alentejo"
	RegionAlgarve  = "Algarve"
	RegionMadeira  = "Madeira"
	RegionAzores   = "Açores"
)

type district struct {
	name   string
	region string
}

var cities = map[string]district{
	"porto":             {"Porto", RegionNorth},
	"braga":             {"Braga", RegionNorth},
	"viana do castelo":  {"Viana do Castelo", RegionNorth},
	"vila real":         {"Vila Real", RegionNorth},
	"bragança":          {"Bragança", RegionNorth},
	"aveiro":            {"Aveiro", RegionNorth},
	"coimbra":           {"Coimbra", RegionCentre},
	"leiria":            {"Leiria", RegionCentre},
	"viseu":             {"Viseu", RegionCentre},
	"guarda":            {"Guarda", RegionCentre},
	"castelo branco":    {"Castelo Branco", RegionCentre},
	"lisboa":            {"Lisboa", RegionLisbon},
	"setúbal":           {"Setúbal", RegionLisbon},
	"santarém":          {"Santarém", RegionLisbon},
	"évora":             {"Évora", RegionAlentejo},
	"beja":              {"Beja", RegionAlentejo},
	"portalegre":        {"Portalegre", RegionAlentejo},
	"faro":              {"Faro", RegionAlgarve},
	"funchal":           {"Madeira", RegionMadeira},
	"angra do heroísmo": {"Açores", RegionAzores},
	"ponta delgada":     {"Açores", RegionAzores},
	"horta":             {"Açores", RegionAzores},
}

// suburbs are matched when no city is, so the district can still be found
var suburbs = map[string]district{
	"sintra":     {"Lisboa", RegionLisbon},
	"cascais":    {"Lisboa", RegionLisbon},
	"gaia":       {"Porto", RegionNorth},
	"matosinhos": {"Porto", RegionNorth},
}

// ParseLocation maps a free-form workplace such as "Escritório, Porto" to a Location.
// The second return value is false when nothing was recognized; the location then only
// gets national holidays.
func ParseLocation(workplace string) (Location, bool) {
	s := strings.ToLower(strings.TrimSpace(workplace))
	if s == "" {
		return Location{}, false
	}
	if city, d, ok := match(s, cities); ok {
		return Location{Municipality: cases.Title(language.Portuguese).String(city), District: d.name, Region: d.region}, true
	}
	if _, d, ok := match(s, suburbs); ok {
		return Location{Municipality: strings.TrimSpace(workplace), District: d.name, Region: d.region}, true
	}
	return Location{Municipality: strings.TrimSpace(workplace)}, false
}

// match returns the longest key contained in s, so "vila real" wins over a shorter name
func match(s string, table map[string]district) (string, district, bool) {
	best := ""
	for key := range table {
		if strings.Contains(s, key) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return "", district{}, false
	}
	return best, table[best], true
}

type fixed struct {
	month int
	day   int
	name  string
}

var national = []fixed{
	{1, 1, "Ano Novo"},
	{4, 25, "Dia da Liberdade"},
	{5, 1, "Dia do Trabalhador"},
	{6, 10, "Dia de Portugal"},
	{8, 15, "Assunção de Nossa Senhora"},
	{10, 5, "Implantação da República"},
	{11, 1, "Todos os Santos"},
	{12, 1, "Restauração da Independência"},
	{12, 8, "Imaculada Conceição"},
	{12, 25, "Natal"},
}

var regional = map[string][]fixed{
	RegionMadeira: {
		{7, 1, "Dia da Região Autónoma da Madeira"},
		{12, 26, "Primeira Oitava"},
	},
	RegionAzores: {
		{5, 20, "Dia da Região Autónoma dos Açores"},
		{6, 9, "Espírito Santo"},
	},
}

var municipal = map[string]fixed{
	"lisboa":  {6, 13, "Santo António"},
	"porto":   {6, 24, "São João"},
	"braga":   {6, 24, "São João Baptista"},
	"coimbra": {7, 4, "Rainha Santa Isabel"},
	"faro":    {9, 7, "Dia do Município"},
	"évora":   {6, 29, "São Pedro"},
}

// Easter returns Easter Sunday of year in the Gregorian calendar
func Easter(year int) domain.Date {
	a := year % 19
	b, c := year/100, year%100
	d, e := b/4, b%4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i, k := c/4, c%4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114
	return domain.NewDate(year, time.Month(n/31), n%31+1)
}

// National returns the national holidays of a year, moveable feasts included
func National(year int) []domain.Holiday {
	out := make([]domain.Holiday, 0, len(national)+3)
	for _, f := range national {
		out = append(out, holiday(year, f, domain.HolidayNational))
	}
	easter := Easter(year)
	out = append(out,
		moveable(easter.AddDays(-2), "Sexta-feira Santa"),
		moveable(easter, "Páscoa"),
		moveable(easter.AddDays(60), "Corpo de Deus"),
	)
	sortHolidays(out)
	return out
}

// Holidays returns every holiday that applies at a location in a year: national ones,
// those of its autonomous region and its municipal holiday. The list is sorted by date.
// Two holidays can share a date; domain.NewHolidaySet resolves that.
func Holidays(year int, loc Location) []domain.Holiday {
	out := National(year)
	for _, f := range regional[loc.Region] {
		out = append(out, holiday(year, f, domain.HolidayRegional))
	}
	if f, ok := municipal[strings.ToLower(loc.Municipality)]; ok {
		out = append(out, holiday(year, f, domain.HolidayMunicipal))
	}
	sortHolidays(out)
	return out
}

func holiday(year int, f fixed, kind string) domain.Holiday {
	return domain.Holiday{
		Date:            domain.NewDate(year, time.Month(f.month), f.day),
		Name:            f.name,
		Type:            kind,
		IsPaid:          true,
		AffectsOvertime: true,
	}
}

func moveable(d domain.Date, name string) domain.Holiday {
	return domain.Holiday{Date: d, Name: name, Type: domain.HolidayNational, IsPaid: true, AffectsOvertime: true}
}

func sortHolidays(h []domain.Holiday) {
	sort.SliceStable(h, func(i, j int) bool {
		if c := h[i].Date.Compare(h[j].Date); c != 0 {
			return c < 0
		}
		return h[i].Name < h[j].Name
	})
}
