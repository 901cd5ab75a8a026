package app

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rentora/internal/core/apperror"
	"rentora/internal/core/entity"
	"rentora/internal/core/id"
	"rentora/internal/core/types"
	"rentora/internal/domain"
	"rentora/internal/domain/amenities/category"
	"rentora/internal/domain/amenities/management"
	"rentora/internal/domain/filter"
	"rentora/internal/domain/listings/description"
	"rentora/internal/domain/listings/listing"
	"rentora/internal/domain/listings/listingamenity"
	"rentora/internal/domain/locations/address"
	"rentora/internal/domain/locations/city"
	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/pkg/logger"
)

// Fixture is the YAML seed document. Cross references use names, not ids.
type Fixture struct {
	Cities         []CityFixture          `yaml:"cities"`
	Addresses      []AddressFixture       `yaml:"addresses"`
	Categories     []CategoryFixture      `yaml:"amenity_categories"`
	Listings       []ListingFixture       `yaml:"listings"`
	EmailTemplates []EmailTemplateFixture `yaml:"email_templates"`
}

type CityFixture struct {
	Name      string `yaml:"name"`
	CountryID string `yaml:"country_id"`
}

type AddressFixture struct {
	City     string   `yaml:"city"`
	Lines    []string `yaml:"lines"`
	Province string   `yaml:"province"`
	ZipCode  string   `yaml:"zip_code"`
}

type CategoryFixture struct {
	Name      string   `yaml:"name"`
	Amenities []string `yaml:"amenities"`
}

type ListingFixture struct {
	Title       string                 `yaml:"title"`
	Description string                 `yaml:"description"`
	Price       string                 `yaml:"price"`
	Status      string                 `yaml:"status"`
	OccupancyID string                 `yaml:"occupancy_id"`
	Amenities   []string               `yaml:"amenities"`
	Details     *ListingDetailsFixture `yaml:"details"`
}

type ListingDetailsFixture struct {
	Summary               string `yaml:"summary"`
	TheSpace              string `yaml:"the_space"`
	GuestAccess           string `yaml:"guest_access"`
	OtherDetails          string `yaml:"other_details"`
	InteractionWithGuests string `yaml:"interaction_with_guests"`
}

type EmailTemplateFixture struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// LoadFixture decodes a YAML fixture. Unknown keys are rejected.
func LoadFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

// SeedReport counts the entities a seed run created and reused.
type SeedReport struct {
	Created map[string]int
	Reused  map[string]int
}

func (r *SeedReport) add(table string, created bool) {
	if created {
		r.Created[table]++
	} else {
		r.Reused[table]++
	}
}

// Seed writes fx through the services. Entities that already exist are
// reused, so a fixture can be applied repeatedly.
func Seed(ctx context.Context, svc *Services, fx *Fixture) (*SeedReport, error) {
	s := &seeder{
		svc:       svc,
		report:    &SeedReport{Created: map[string]int{}, Reused: map[string]int{}},
		cities:    map[string]id.ID{},
		amenities: map[string]id.ID{},
	}

	steps := []func(context.Context, *Fixture) error{
		s.seedCities,
		s.seedAddresses,
		s.seedCategories,
		s.seedListings,
		s.seedEmailTemplates,
	}
	for _, step := range steps {
		if err := step(ctx, fx); err != nil {
			return s.report, err
		}
	}

	logger.Info(ctx, "seed completed", "created", s.report.Created, "reused", s.report.Reused)
	return s.report, nil
}

type seeder struct {
	svc    *Services
	report *SeedReport

	cities    map[string]id.ID
	amenities map[string]id.ID
}

// findOrCreate returns the first live entity matching conds or creates e.
func findOrCreate[T entity.Entity](ctx context.Context, svc *domain.EntityService[T], e T, conds ...filter.Item) (T, bool, error) {
	existing, err := svc.Find(ctx, conds...)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if len(existing) > 0 {
		return existing[0], false, nil
	}
	created, err := svc.Create(ctx, e)
	return created, true, err
}

func (s *seeder) seedCities(ctx context.Context, fx *Fixture) error {
	for _, f := range fx.Cities {
		countryID, err := parseFixtureID("country_id", f.CountryID)
		if err != nil {
			return err
		}
		c, created, err := findOrCreate(ctx, s.svc.Cities.EntityService,
			&city.City{Name: f.Name, CountryID: countryID},
			filter.Eq("name", f.Name))
		if err != nil {
			return fmt.Errorf("city %q: %w", f.Name, err)
		}
		s.cities[f.Name] = c.ID
		s.report.add(TableCities, created)
	}
	return nil
}

func (s *seeder) seedAddresses(ctx context.Context, fx *Fixture) error {
	for i, f := range fx.Addresses {
		cityID, ok := s.cities[f.City]
		if !ok {
			return apperror.NewFieldValidation("city", "unknown city in address fixture").WithDetail("city", f.City)
		}
		c, err := s.svc.Cities.GetByID(ctx, cityID)
		if err != nil {
			return err
		}

		a := &address.Address{CityID: cityID, CountryID: c.CountryID, Province: f.Province}
		lines := []*string{&a.AddressLine1, &a.AddressLine2, &a.AddressLine3, &a.AddressLine4}
		if len(f.Lines) > len(lines) {
			return apperror.NewFieldValidation("lines", "at most four address lines").WithDetail("index", i)
		}
		for j, line := range f.Lines {
			*lines[j] = line
		}
		if f.ZipCode != "" {
			zip := f.ZipCode
			a.ZipCode = &zip
		}

		_, created, err := findOrCreate(ctx, s.svc.Addresses.EntityService, a,
			filter.Eq("city_id", cityID),
			filter.Eq("address_line1", a.AddressLine1))
		if err != nil {
			return fmt.Errorf("address %d: %w", i, err)
		}
		s.report.add(TableAddresses, created)
	}
	return nil
}

func (s *seeder) seedCategories(ctx context.Context, fx *Fixture) error {
	for _, f := range fx.Categories {
		c, created, err := findOrCreate(ctx, s.svc.AmenityCategories.EntityService,
			&category.Category{CategoryName: f.Name},
			filter.Eq("category_name", f.Name))
		if err != nil {
			return fmt.Errorf("category %q: %w", f.Name, err)
		}
		s.report.add(TableAmenityCategories, created)

		for _, name := range f.Amenities {
			if err := s.seedAmenity(ctx, c.ID, name); err != nil {
				return fmt.Errorf("amenity %q: %w", name, err)
			}
		}
	}
	return nil
}

func (s *seeder) seedAmenity(ctx context.Context, categoryID id.ID, name string) error {
	existing, err := s.svc.Amenities.Find(ctx,
		filter.Eq("category_id", categoryID),
		filter.Eq("amenity_name", name))
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.amenities[name] = existing[0].ID
		s.report.add(TableAmenities, false)
		return nil
	}

	created, err := s.svc.Management.AddAmenity(ctx, management.AmenityDTO{AmenityName: name, CategoryID: categoryID})
	if err != nil {
		return err
	}
	s.amenities[name] = created.ID
	s.report.add(TableAmenities, true)
	return nil
}

func (s *seeder) seedListings(ctx context.Context, fx *Fixture) error {
	for _, f := range fx.Listings {
		l, err := listingFromFixture(f)
		if err != nil {
			return fmt.Errorf("listing %q: %w", f.Title, err)
		}
		l, created, err := findOrCreate(ctx, s.svc.Listings.EntityService, l, filter.Eq("title", f.Title))
		if err != nil {
			return fmt.Errorf("listing %q: %w", f.Title, err)
		}
		s.report.add(TableListings, created)

		if f.Details != nil && created {
			if _, err := s.svc.Descriptions.Create(ctx, &description.Description{
				ListingDescription:    f.Details.Summary,
				TheSpace:              f.Details.TheSpace,
				GuestAccess:           f.Details.GuestAccess,
				OtherDetails:          f.Details.OtherDetails,
				InteractionWithGuests: f.Details.InteractionWithGuests,
			}); err != nil {
				return fmt.Errorf("listing %q details: %w", f.Title, err)
			}
			s.report.add(TableDescriptions, true)
		}

		if err := s.linkAmenities(ctx, l.ID, f.Amenities); err != nil {
			return fmt.Errorf("listing %q: %w", f.Title, err)
		}
	}
	return nil
}

// linkAmenities stages every missing link and commits them together.
func (s *seeder) linkAmenities(ctx context.Context, listingID id.ID, names []string) error {
	staged := 0
	for _, name := range names {
		amenityID, ok := s.amenities[name]
		if !ok {
			return apperror.NewFieldValidation("amenities", "unknown amenity in listing fixture").WithDetail("amenity", name)
		}
		exists, err := s.svc.ListingAmenities.Exists(ctx,
			filter.Eq("listing_id", listingID),
			filter.Eq("amenity_id", amenityID))
		if err != nil {
			return err
		}
		if exists {
			s.report.add(TableListingAmenities, false)
			continue
		}

		link := &listingamenity.ListingAmenity{ListingID: listingID, AmenityID: amenityID}
		if _, err := s.svc.Management.AddListingAmenity(ctx, link, domain.WithoutSave()); err != nil {
			return err
		}
		staged++
	}
	if staged == 0 {
		return nil
	}
	if err := s.svc.Store.SaveChanges(ctx); err != nil {
		return err
	}
	s.report.Created[TableListingAmenities] += staged
	return nil
}

func (s *seeder) seedEmailTemplates(ctx context.Context, fx *Fixture) error {
	for _, f := range fx.EmailTemplates {
		_, created, err := findOrCreate(ctx, s.svc.EmailTemplates.EntityService,
			&emailtemplate.EmailTemplate{Subject: f.Subject, Body: f.Body},
			filter.Eq("subject", f.Subject),
			filter.Eq("body", f.Body))
		if err != nil {
			return fmt.Errorf("email template %q: %w", f.Subject, err)
		}
		s.report.add(TableEmailTemplates, created)
	}
	return nil
}

func listingFromFixture(f ListingFixture) (*listing.Listing, error) {
	price, err := types.NewMoneyFromString(f.Price)
	if err != nil {
		return nil, apperror.NewFieldValidation("price", "invalid price").WithDetail("value", f.Price)
	}
	occupancyID, err := parseFixtureID("occupancy_id", f.OccupancyID)
	if err != nil {
		return nil, err
	}
	status := listing.Status(f.Status)
	if status == "" {
		status = listing.StatusDraft
	}
	return &listing.Listing{
		Title:       f.Title,
		Description: f.Description,
		Price:       price,
		Status:      status,
		OccupancyID: occupancyID,
	}, nil
}

// parseFixtureID accepts a uuid or, when empty, generates one.
func parseFixtureID(field, raw string) (id.ID, error) {
	if raw == "" {
		return id.New(), nil
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewFieldValidation(field, "invalid id").WithDetail("value", raw)
	}
	return parsed, nil
}
