package testdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/industrycatalog/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GeneratorConfig configures industry generation parameters
type GeneratorConfig struct {
	Count         int
	Sector        string  // empty picks a random sector per record
	Country       string  // empty picks a random country per record
	ContactChance float64 // 0.0-1.0 (probability of having contact details)
	ProductsMax   int     // 0 means 4
}

// LocationData maps countries to some of their industrial cities
var LocationData = map[string][]string{
	"Brasil":         {"São Paulo", "Belo Horizonte", "Curitiba", "Porto Alegre", "Campinas"},
	"Argentina":      {"Buenos Aires", "Córdoba", "Rosario"},
	"Chile":          {"Santiago", "Valparaíso", "Antofagasta"},
	"Estados Unidos": {"Houston", "Detroit", "San Francisco", "Chicago", "Pittsburgh"},
	"Canadá":         {"Toronto", "Montreal", "Calgary"},
	"México":         {"Monterrey", "Guadalajara", "Querétaro"},
	"Alemanha":       {"Frankfurt", "Stuttgart", "Munique", "Hamburgo"},
	"Portugal":       {"Porto", "Lisboa", "Braga"},
	"Espanha":        {"Barcelona", "Bilbao", "Valência"},
	"Japão":          {"Osaka", "Nagoya", "Yokohama"},
}

// Sector-specific business name prefixes and suffixes
var businessNameParts = map[string]struct {
	Prefixes []string
	Suffixes []string
}{
	"Manufatura": {
		Prefixes: []string{"Metalúrgica", "Fundição", "Usinagem", "Forjaria", "Indústria"},
		Suffixes: []string{"S.A.", "Ltda.", "Industrial", "do Brasil"},
	},
	"Tecnologia": {
		Prefixes: []string{"Tech", "Data", "Smart", "Cyber", "Cloud"},
		Suffixes: []string{"Solutions Inc.", "Systems", "Labs", "Software"},
	},
	"Agronegócio": {
		Prefixes: []string{"Agro", "Campo", "Terra", "Safra", "Verde"},
		Suffixes: []string{"Ltda.", "Alimentos", "Cooperativa", "Rural"},
	},
	"Químico": {
		Prefixes: []string{"Química", "Polímeros", "Resinas", "Chem"},
		Suffixes: []string{"GmbH", "Industrial", "S.A.", "Group"},
	},
	"Têxtil": {
		Prefixes: []string{"Têxtil", "Fios", "Malharia", "Tecelagem"},
		Suffixes: []string{"Moderna S.A.", "Ltda.", "Fashion", "Confecções"},
	},
	"Mineração": {
		Prefixes: []string{"Mineração", "Minérios", "Extração", "Pedreira"},
		Suffixes: []string{"Sustentável Ltda.", "S.A.", "Mining", "do Sul"},
	},
}

var statuses = []string{"available", "seeking"}

// Sectors returns the sectors the generator knows business names for
func Sectors() []string {
	return sortedKeys(businessNameParts)
}

// Countries returns the countries the generator knows cities for
func Countries() []string {
	return sortedKeys(LocationData)
}

// Generator produces realistic industries from a gofakeit source
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator. The same non-zero seed yields the same records.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// BusinessName creates a sector-specific realistic business name
func (g *Generator) BusinessName(sector string) string {
	parts, ok := businessNameParts[sector]
	if !ok {
		// Fallback for unknown sectors
		return fmt.Sprintf("%s %s", g.faker.Company(), g.faker.BuzzWord())
	}

	prefix := g.faker.RandomString(parts.Prefixes)
	suffix := g.faker.RandomString(parts.Suffixes)
	return fmt.Sprintf("%s %s %s", prefix, g.faker.LastName(), suffix)
}

// Industry creates a single industry with realistic data
func (g *Generator) Industry(config GeneratorConfig) models.Industry {
	f := g.faker

	sector := config.Sector
	if sector == "" {
		sector = f.RandomString(Sectors())
	}
	country := config.Country
	if country == "" {
		country = f.RandomString(Countries())
	}
	city := ""
	if cities := LocationData[country]; len(cities) > 0 {
		city = f.RandomString(cities)
	}

	productsMax := config.ProductsMax
	if productsMax <= 0 {
		productsMax = 4
	}
	title := cases.Title(language.Portuguese)
	products := make([]string, f.Number(1, productsMax))
	for i := range products {
		products[i] = fmt.Sprintf("%s %s", title.String(f.Adjective()), f.Noun())
	}

	name := g.BusinessName(sector)
	ind := models.Industry{
		Name:        name,
		Sector:      sector,
		Country:     country,
		City:        city,
		Description: f.Sentence(8),
		Products:    products,
		Status:      f.RandomString(statuses),
		Location: &models.Location{
			Lat: f.Latitude(),
			Lng: f.Longitude(),
		},
	}

	if f.Float64() < config.ContactChance {
		domain := strings.ToLower(strings.ReplaceAll(name, " ", ""))
		domain = strings.Trim(strings.ReplaceAll(domain, ".", ""), "-")
		if r := []rune(domain); len(r) > 20 {
			domain = string(r[:20])
		}
		ind.ContactPerson = f.Name()
		ind.Position = f.JobTitle()
		ind.Email = fmt.Sprintf("contato@%s.com", domain)
		ind.Phone = f.Phone()
		ind.Website = fmt.Sprintf("https://www.%s.com", domain)
	}

	return ind
}

// Industries creates config.Count industries
func (g *Generator) Industries(config GeneratorConfig) []models.Industry {
	records := make([]models.Industry, config.Count)
	for i := 0; i < config.Count; i++ {
		records[i] = g.Industry(config)
	}
	return records
}

// GenerateIndustries creates count industries across random sectors and
// countries with a fresh random seed
func GenerateIndustries(count int) []models.Industry {
	return NewGenerator(0).Industries(GeneratorConfig{
		Count:         count,
		ContactChance: 0.7,
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Map order is random; seeded generation needs a stable order
	sort.Strings(keys)
	return keys
}
