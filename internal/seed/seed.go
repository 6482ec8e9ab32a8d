// Package seed imports a starting catalog from YAML.
package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/massage-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/massage-scheduler/internal/usecase/client"
)

type File struct {
	Services []ServiceEntry `yaml:"services"`
	Clients  []ClientEntry  `yaml:"clients"`
}

type ServiceEntry struct {
	Name        string `yaml:"name"`
	DurationMin int    `yaml:"duration_min"`
	Price       string `yaml:"price"`
	Active      *bool  `yaml:"active"`
}

type ClientEntry struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Notes string `yaml:"notes"`
}

type Result struct {
	ServicesCreated int
	ServicesSkipped int
	ClientsCreated  int
	ClientsSkipped  int
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Importer goes through the same validating use cases as the API. Entries
// whose name (and phone, for clients) already exist are skipped.
type Importer struct {
	services *catalog.Services
	clients  *client.Clients
}

func NewImporter(services *catalog.Services, clients *client.Clients) *Importer {
	return &Importer{services: services, clients: clients}
}

func (im *Importer) Import(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	existing, err := im.services.List(ctx, true)
	if err != nil {
		return nil, err
	}
	haveService := map[string]bool{}
	for _, s := range existing {
		haveService[strings.ToLower(s.Name)] = true
	}

	for i, e := range f.Services {
		if haveService[strings.ToLower(strings.TrimSpace(e.Name))] {
			res.ServicesSkipped++
			continue
		}

		price := decimal.Zero
		if e.Price != "" {
			p, err := decimal.NewFromString(e.Price)
			if err != nil {
				return res, fmt.Errorf("service #%d: invalid price %q", i+1, e.Price)
			}
			price = p
		}

		if _, err := im.services.Create(ctx, catalog.Input{
			Name:        e.Name,
			DurationMin: e.DurationMin,
			Price:       price,
			Active:      e.Active,
		}); err != nil {
			return res, fmt.Errorf("service #%d %q: %w", i+1, e.Name, err)
		}
		haveService[strings.ToLower(strings.TrimSpace(e.Name))] = true
		res.ServicesCreated++
	}

	clients, err := im.clients.List(ctx, "")
	if err != nil {
		return nil, err
	}
	haveClient := map[string]bool{}
	for _, c := range clients {
		haveClient[clientKey(c.Name, c.Phone)] = true
	}

	for i, e := range f.Clients {
		key := clientKey(e.Name, e.Phone)
		if haveClient[key] {
			res.ClientsSkipped++
			continue
		}
		if _, err := im.clients.Create(ctx, client.Input{
			Name:  e.Name,
			Phone: e.Phone,
			Notes: e.Notes,
		}); err != nil {
			return res, fmt.Errorf("client #%d %q: %w", i+1, e.Name, err)
		}
		haveClient[key] = true
		res.ClientsCreated++
	}

	return res, nil
}

func clientKey(name, phone string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.TrimSpace(phone)
}
