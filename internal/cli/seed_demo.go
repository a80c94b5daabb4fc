package cli

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/resumoteca/resumoteca/internal/config"
	"github.com/resumoteca/resumoteca/internal/database"
	"github.com/resumoteca/resumoteca/internal/database/books"
	"github.com/resumoteca/resumoteca/internal/database/taxonomy"
)

// SeedDemoCommand loads the starter catalog into the database.
type SeedDemoCommand struct {
	DatabasePath string
}

func NewSeedDemoCommand() *SeedDemoCommand {
	return &SeedDemoCommand{}
}

func (cmd *SeedDemoCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-demo [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load the starter catalog of book summaries. Books whose slug already\n")
		fmt.Fprintf(os.Stderr, "exists are skipped, so the command is safe to re-run.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedDemoCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB, taxonomy.NewRepository(db.DB))

	var created, skipped int
	for _, rec := range starterCatalog() {
		_, err := repo.CreateBook(rec)
		if err != nil {
			if errors.Is(err, books.ErrDuplicateSlug) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to seed %q: %w", rec.Title, err)
		}
		created++
	}

	fmt.Printf("Seeded %d books (%d already present)\n", created, skipped)
	return nil
}

// starterCatalog returns the initial book summaries the public site launches
// with. Content is in Brazilian Portuguese, matching the site's audience.
func starterCatalog() []books.Record {
	return []books.Record{
		{
			Title:      "Atômico: Mudanças Pequenas, Resultados Impressionantes",
			Author:     "James Clear",
			Year:       2018,
			Categories: []string{"Produtividade", "Psicologia"},
			Themes:     []string{"Hábitos", "Autodisciplina", "Produtividade", "Desenvolvimento pessoal"},
			Summary:    "James Clear apresenta uma abordagem revolucionária para a formação de bons hábitos e abandono dos maus, oferecendo um framework prático baseado na ideia de pequenas melhorias de 1% ao dia. O autor explica como pequenas mudanças, quando acumuladas, podem levar a resultados impressionantes, utilizando insights da neurociência e psicologia comportamental.",
			KeyTakeaways: []string{
				"Pequenas mudanças de 1% acumulam-se em grandes resultados ao longo do tempo",
				"Os hábitos seguem um ciclo de quatro etapas: deixa, desejo, resposta e recompensa",
				"Para criar hábitos sustentáveis, torne-os óbvios, atrativos, fáceis e satisfatórios",
				"O ambiente tem mais influência na formação de hábitos do que a motivação",
				"A identidade é mais importante que os resultados na mudança de comportamento",
			},
			ForWhom:    "Recomendado para qualquer pessoa que queira melhorar sua vida através da formação de melhores hábitos, especialmente profissionais ocupados que buscam implementar mudanças sustentáveis sem depender de motivação ou força de vontade.",
			Quote:      "Você não sobe ao nível das suas metas. Você cai ao nível dos seus sistemas.",
			CoverImage: config.PlaceholderCover,
			Slug:       "atomico-mudancas-pequenas-resultados-impressionantes",
		},
		{
			Title:      "Deep Work: Regras para o Sucesso em um Mundo Distraído",
			Author:     "Cal Newport",
			Year:       2016,
			Categories: []string{"Produtividade", "Negócios"},
			Themes:     []string{"Foco", "Concentração", "Produtividade", "Trabalho profundo"},
			Summary:    "Cal Newport argumenta que a capacidade de concentração profunda é cada vez mais rara e valiosa na nossa economia. O livro divide-se entre a argumentação sobre por que o trabalho profundo é importante e como desenvolver esta habilidade. O autor apresenta estratégias concretas para eliminar distrações e criar rotinas que permitem períodos de concentração intensa.",
			KeyTakeaways: []string{
				"O trabalho profundo é a capacidade de focar sem distrações em uma tarefa cognitivamente exigente",
				"Esta habilidade está se tornando cada vez mais rara e mais valiosa na economia atual",
				"O trabalho raso (emails, reuniões, redes sociais) consome a maior parte do tempo profissional",
				"Para praticar o trabalho profundo, é necessário eliminar distrações e criar rotinas específicas",
				"Descansar completamente da tecnologia é essencial para recarregar a capacidade de concentração",
			},
			ForWhom:    "Ideal para profissionais do conhecimento, acadêmicos, escritores e qualquer pessoa que precise realizar trabalho criativo e intelectualmente desafiador em um mundo repleto de distrações digitais.",
			Quote:      "O trabalho profundo não é apenas satisfatório para o trabalhador, mas gera valor significativo, é difícil de replicar e é, ao mesmo tempo, raro.",
			CoverImage: config.PlaceholderCover,
			Slug:       "deep-work-regras-para-o-sucesso",
		},
		{
			Title:      "Essencialismo: A Disciplina da Busca por Menos",
			Author:     "Greg McKeown",
			Year:       2014,
			Categories: []string{"Produtividade", "Liderança"},
			Themes:     []string{"Foco", "Priorização", "Simplicidade", "Produtividade"},
			Summary:    "Greg McKeown apresenta uma abordagem sistemática para identificar o que é absolutamente essencial e eliminar tudo o mais, permitindo que façamos menos, mas melhor. O livro argumenta contra o mito de que podemos 'ter tudo' e 'fazer tudo', propondo um caminho mais deliberado e seletivo para direcionar tempo, energia e atenção.",
			KeyTakeaways: []string{
				"O essencialismo é uma disciplina sistemática para discernir o que é absolutamente essencial",
				"Realize menos coisas, mas com maior qualidade e impacto",
				"Aprenda a dizer 'não' de forma graciosa e elimine o não-essencial",
				"O poder da escolha seletiva supera a armadilha da sobrecarga",
				"Crie margens e buffers para lidar com o inesperado e manter o foco",
			},
			ForWhom:    "Recomendado para líderes, gerentes e profissionais sobrecarregados que buscam maior clareza, maior impacto e uma abordagem mais consciente para suas carreiras e vidas.",
			Quote:      "O essencialismo não é sobre fazer mais coisas em menos tempo. É sobre fazer apenas as coisas certas.",
			CoverImage: config.PlaceholderCover,
			Slug:       "essencialismo-a-disciplina-da-busca-por-menos",
		},
		{
			Title:      "O Poder do Hábito",
			Author:     "Charles Duhigg",
			Year:       2012,
			Categories: []string{"Psicologia", "Negócios"},
			Themes:     []string{"Hábitos", "Mudança de comportamento", "Neurociência", "Produtividade"},
			Summary:    "Charles Duhigg explora a ciência por trás da formação de hábitos e como podemos transformá-los para mudar nossas vidas. Dividido em três partes, o livro examina os hábitos individuais, organizacionais e sociais, revelando como eles funcionam e como podemos reprogramá-los através do loop de hábito: deixa, rotina e recompensa.",
			KeyTakeaways: []string{
				"Os hábitos seguem um ciclo de três partes: deixa, rotina e recompensa",
				"Para mudar um hábito, identifique a deixa e mantenha a mesma recompensa, mudando apenas a rotina",
				"Os hábitos-chave ou 'keystone habits' desencadeiam uma série de mudanças positivas em outras áreas",
				"A crença e o senso de comunidade são essenciais para mudanças de hábitos duradouras",
				"As organizações podem transformar-se ao focar na mudança de hábitos culturais específicos",
			},
			ForWhom:    "Indicado para qualquer pessoa interessada em entender e mudar seus próprios hábitos, bem como líderes que desejam transformar o comportamento de suas organizações e equipes.",
			Quote:      "O hábito é uma escolha que fazemos deliberadamente em algum momento e depois paramos de fazer, mas continuamos executando todos os dias.",
			CoverImage: config.PlaceholderCover,
			Slug:       "o-poder-do-habito",
		},
		{
			Title:      "Pense de Novo",
			Author:     "Adam Grant",
			Year:       2021,
			Categories: []string{"Psicologia", "Liderança"},
			Themes:     []string{"Pensamento crítico", "Flexibilidade mental", "Aprendizado", "Tomada de decisão"},
			Summary:    "Adam Grant explora a importância de questionar nossas próprias opiniões e abrir nossas mentes para repensar e desaprender. O livro argumenta que a capacidade de reconsiderar e abandonar conhecimentos e crenças obsoletas é uma habilidade essencial num mundo em rápida mudança, tanto para o sucesso individual quanto para o progresso coletivo.",
			KeyTakeaways: []string{
				"A inteligência não está em saber tudo, mas na capacidade de desaprender e reaprender",
				"O modo 'cientista' de pensar (buscar verdade em vez de validação) é mais eficaz que os modos 'pregador', 'político' ou 'promotor'",
				"Cultivar a humildade intelectual ajuda a reconhecer os limites do nosso conhecimento",
				"Conversas construtivas com pessoas que pensam diferente ampliam nossa perspectiva",
				"Criar uma cultura de aprendizagem requer valorizar a flexibilidade mental sobre a consistência",
			},
			ForWhom:    "Perfeito para líderes, educadores, profissionais do conhecimento e qualquer pessoa interessada em melhorar sua tomada de decisões e adaptabilidade em um mundo de incertezas e rápidas mudanças.",
			Quote:      "A marca da sabedoria não é acertar todas as respostas, mas questionar todas as respostas.",
			CoverImage: config.PlaceholderCover,
			Slug:       "pense-de-novo",
		},
		{
			Title:      "Mindset: A Nova Psicologia do Sucesso",
			Author:     "Carol S. Dweck",
			Year:       2006,
			Categories: []string{"Psicologia", "Desenvolvimento pessoal"},
			Themes:     []string{"Crescimento pessoal", "Mentalidade", "Aprendizado", "Resiliência"},
			Summary:    "Carol Dweck apresenta sua revolucionária pesquisa sobre os dois tipos de mindset que moldam nossas vidas: o fixo e o de crescimento. Enquanto pessoas com mindset fixo acreditam que suas qualidades são imutáveis, aquelas com mindset de crescimento entendem que habilidades podem ser desenvolvidas através de dedicação e trabalho árduo.",
			KeyTakeaways: []string{
				"No mindset fixo, acredita-se que inteligência e talento são qualidades inatas e imutáveis",
				"No mindset de crescimento, entende-se que habilidades podem ser desenvolvidas com esforço e persistência",
				"O elogio ao processo (esforço, estratégias) é mais eficaz que o elogio a traços fixos (inteligência, talento)",
				"Fracassos são oportunidades de crescimento, não definições de capacidade",
				"É possível mudar de um mindset fixo para um mindset de crescimento com consciência e prática",
			},
			ForWhom:    "Essencial para pais, educadores, líderes e qualquer pessoa interessada em desenvolver seu potencial e o dos outros através de uma mentalidade mais produtiva e resiliente.",
			Quote:      "O mindset de crescimento se baseia na crença de que suas qualidades básicas são coisas que você pode cultivar por meio de seus esforços.",
			CoverImage: config.PlaceholderCover,
			Slug:       "mindset-a-nova-psicologia-do-sucesso",
		},
	}
}
