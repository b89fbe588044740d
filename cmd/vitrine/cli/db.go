package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-creative/vitrine/internal/config"
	"github.com/aria-creative/vitrine/internal/model"
	"github.com/aria-creative/vitrine/internal/store"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	cmd.AddCommand(newDBStatusCmd())
	cmd.AddCommand(newDBSeedCmd())

	return cmd
}

func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Database.Driver, storeDSN(cfg))
}

func newDBStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show table counts for the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			messages, err := st.CountMessages(ctx)
			if err != nil {
				return err
			}
			projects, err := st.CountProjects(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "messages:  %d\n", messages)
			fmt.Fprintf(cmd.OutOrStdout(), "projects:  %d\n", projects)
			return nil
		},
	}
}

func newDBSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default portfolio projects into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.SeedProjects(context.Background(), defaultProjects())
			if err != nil {
				return fmt.Errorf("seed projects: %w", err)
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "projects table is not empty, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d projects\n", n)
			return nil
		},
	}
}

// defaultProjects is the agency's launch portfolio.
func defaultProjects() []model.Project {
	return []model.Project{
		{
			Title:        "CGEPRO",
			Description:  "Votre spécialiste du bois exotique et des aménagements extérieurs sur La Réunion",
			Technologies: []string{"WordPress", "PHP", "MySQL", "SEO"},
			Client:       "CGEPRO",
			Duration:     "2 mois",
			Status:       model.ProjectTermine,
			ImageURL:     "/uploads/projects/cgepro.jpg",
			Date:         "15/03/2024",
			URL:          "https://cgepro.com",
		},
		{
			Title:        "ERIC RABY",
			Description:  "Coaching en compétences sociales et émotionnelles",
			Technologies: []string{"React", "Node.js", "Stripe", "Calendar API"},
			Client:       "Eric Raby Coaching",
			Duration:     "3 mois",
			Status:       model.ProjectTermine,
			ImageURL:     "/uploads/projects/eric.jpg",
			Date:         "22/04/2024",
			URL:          "https://eric-raby.com",
		},
		{
			Title:        "CONNECT TALENT",
			Description:  "Plateforme de mise en relation entre entreprises et talents africains",
			Technologies: []string{"Vue.js", "Laravel", "PostgreSQL", "Socket.io"},
			Client:       "Connect Talent Inc",
			Duration:     "5 mois",
			Status:       model.ProjectTermine,
			ImageURL:     "/uploads/projects/connect.png",
			Date:         "10/05/2024",
			URL:          "https://connecttalent.cc",
		},
		{
			Title:        "SOA DIA TRAVEL",
			Description:  "Transport & Logistique à Madagascar",
			Technologies: []string{"Angular", "Express.js", "MongoDB", "Maps API"},
			Client:       "SOA DIA TRAVEL",
			Duration:     "4 mois",
			Status:       model.ProjectTermine,
			ImageURL:     "/uploads/projects/soa.jpg",
			Date:         "28/06/2024",
			URL:          "https://soatransplus.mg",
		},
	}
}
