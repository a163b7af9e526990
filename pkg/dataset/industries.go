// Package dataset holds the read-only records served when the document store is unreachable.
package dataset

import "github.com/jordanlanch/industrycatalog/pkg/models"

var industries = []models.Industry{
	{
		ID:          "1",
		Name:        "Metalúrgica Global S.A.",
		Sector:      "Manufatura",
		Country:     "Brasil",
		State:       "São Paulo",
		City:        "São Paulo",
		Description: "Fabricante de componentes metálicos para indústria automotiva",
		Products: []string{
			"Componentes de transmissão automotiva",
			"Peças de suspensão de alta resistência",
			"Sistemas de freio para veículos pesados",
			"Componentes estruturais de chassis",
		},
		Certifications: []string{"ISO 9001", "ISO 14001", "IATF 16949"},
		ExportMarkets:  []string{"Argentina", "Chile", "México", "Estados Unidos", "Alemanha"},
		ContactPerson:  "Carlos Silva",
		Position:       "Diretor de Exportação",
		Email:          "carlos.silva@metalurgicaglobal.com.br",
		Phone:          "+55 11 3456-7890",
		Website:        "https://www.metalurgicaglobal.com.br",
		Status:         "available",
		Location:       &models.Location{Lat: -23.5505, Lng: -46.6333},
	},
	{
		ID:          "2",
		Name:        "TechSolutions Inc.",
		Sector:      "Tecnologia",
		Country:     "Estados Unidos",
		State:       "Califórnia",
		City:        "San Francisco",
		Description: "Desenvolvimento de soluções de automação industrial",
		Products: []string{
			"Sistemas de automação industrial",
			"Software de gestão de produção",
			"Sensores inteligentes",
			"Soluções IoT para indústria",
		},
		Certifications: []string{"ISO 9001", "ISO 27001"},
		ExportMarkets:  []string{"Brasil", "México", "Canadá", "Alemanha", "Japão"},
		ContactPerson:  "John Smith",
		Position:       "International Business Manager",
		Email:          "john.smith@techsolutions.com",
		Phone:          "+1 415-555-7890",
		Website:        "https://www.techsolutions.com",
		Status:         "seeking",
		Location:       &models.Location{Lat: 37.7749, Lng: -122.4194},
	},
	{
		ID:          "3",
		Name:        "AgroVerde Ltda.",
		Sector:      "Agronegócio",
		Country:     "Brasil",
		State:       "Mato Grosso",
		City:        "Cuiabá",
		Description: "Produção de insumos agrícolas sustentáveis",
		Products: []string{
			"Fertilizantes orgânicos",
			"Defensivos biológicos",
			"Sementes certificadas",
			"Sistemas de irrigação eficiente",
		},
		Certifications: []string{"ISO 14001", "Certificação Orgânica", "Rainforest Alliance"},
		ExportMarkets:  []string{"Argentina", "Paraguai", "Uruguai", "Chile"},
		ContactPerson:  "Ana Oliveira",
		Position:       "Gerente Comercial",
		Email:          "ana.oliveira@agroverde.com.br",
		Phone:          "+55 65 3333-4444",
		Website:        "https://www.agroverde.com.br",
		Status:         "available",
		Location:       &models.Location{Lat: -15.6014, Lng: -56.0979},
	},
	{
		ID:          "4",
		Name:        "Química Industrial GmbH",
		Sector:      "Químico",
		Country:     "Alemanha",
		State:       "Baviera",
		City:        "Munique",
		Description: "Produção de compostos químicos para diversos setores",
		Products: []string{
			"Solventes industriais",
			"Aditivos para plásticos",
			"Catalisadores",
			"Produtos para tratamento de água",
		},
		Certifications: []string{"ISO 9001", "ISO 14001", "REACH"},
		ExportMarkets:  []string{"França", "Itália", "Espanha", "Brasil", "China"},
		ContactPerson:  "Klaus Weber",
		Position:       "Export Director",
		Email:          "klaus.weber@qiGmbH.de",
		Phone:          "+49 89 1234-5678",
		Website:        "https://www.qi-gmbh.de",
		Status:         "seeking",
		Location:       &models.Location{Lat: 48.1351, Lng: 11.5820},
	},
	{
		ID:          "5",
		Name:        "Têxtil Moderna S.A.",
		Sector:      "Têxtil",
		Country:     "Portugal",
		State:       "Porto",
		City:        "Vila Nova de Gaia",
		Description: "Fabricação de tecidos técnicos de alta performance",
		Products: []string{
			"Tecidos impermeáveis",
			"Materiais têxteis para automóveis",
			"Tecidos anti-chama",
			"Tecidos técnicos para esportes",
		},
		Certifications: []string{"ISO 9001", "OEKO-TEX Standard 100"},
		ExportMarkets:  []string{"Espanha", "França", "Brasil", "Marrocos", "Angola"},
		ContactPerson:  "Manuel Ferreira",
		Position:       "Diretor de Exportação",
		Email:          "manuel.ferreira@textilmoderna.pt",
		Phone:          "+351 22 123-4567",
		Website:        "https://www.textilmoderna.pt",
		Status:         "available",
		Location:       &models.Location{Lat: 41.1333, Lng: -8.6167},
	},
	{
		ID:          "6",
		Name:        "Mineração Sustentável Ltda.",
		Sector:      "Mineração",
		Country:     "Brasil",
		State:       "Minas Gerais",
		City:        "Belo Horizonte",
		Description: "Extração de minérios com práticas sustentáveis",
		Products: []string{
			"Minério de ferro",
			"Bauxita",
			"Manganês",
			"Serviços de recuperação ambiental",
		},
		Certifications: []string{"ISO 14001", "ISO 45001", "Certificação Verde"},
		ExportMarkets:  []string{"China", "Japão", "Coreia do Sul", "Alemanha"},
		ContactPerson:  "Roberto Campos",
		Position:       "Diretor Comercial",
		Email:          "roberto.campos@mineracaosustentavel.com.br",
		Phone:          "+55 31 9876-5432",
		Website:        "https://www.mineracaosustentavel.com.br",
		Status:         "seeking",
		Location:       &models.Location{Lat: -19.9167, Lng: -43.9345},
	},
}

// Industries returns a copy of the fallback records in their fixed order
func Industries() []models.Industry {
	out := make([]models.Industry, len(industries))
	for i, ind := range industries {
		out[i] = ind.Clone()
	}
	return out
}
