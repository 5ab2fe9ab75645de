package domain

import "github.com/yndnr/canikit-go/pkg/principal"

// ProjectInitArgs are the user supplied fields of a project.
type ProjectInitArgs struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Logo        string  `json:"logo"`
	Website     *string `json:"website,omitempty"`
}

// Validate requires a name of at least 3 characters and a logo.
func (a ProjectInitArgs) Validate() error {
	if len(a.Name) < 3 {
		return BadRequest("Name must be at least 3 characters").WithMethod("validate").WithSource(Source)
	}
	if a.Logo == "" {
		return BadRequest("Logo is not a valid base64 string.").WithMethod("validate").WithSource(Source)
	}
	return nil
}

// Metadata describes a project. Unset text fields are nil.
type Metadata struct {
	URL         *string           `json:"url,omitempty"`
	Logo        *string           `json:"logo,omitempty"`
	Name        *string           `json:"name,omitempty"`
	Description *string           `json:"description,omitempty"`
	CreatedBy   principal.Account `json:"created_by"`
	CreatedAt   uint64            `json:"created_at"`
	UpdatedAt   uint64            `json:"updated_at"`
}

// UpdateMetadata carries the fields to change. Nil fields keep their value.
type UpdateMetadata struct {
	URL         *string `json:"url,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// MetadataResponse is the public view of Metadata.
type MetadataResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Logo        string            `json:"logo"`
	URL         *string           `json:"url,omitempty"`
	CreatedBy   principal.Account `json:"created_by"`
	CreatedAt   uint64            `json:"created_at"`
	UpdatedAt   uint64            `json:"updated_at"`
}

// DefaultMetadata returns empty metadata created by the anonymous principal.
func DefaultMetadata() Metadata {
	return Metadata{CreatedBy: principal.AccountOf(principal.Anonymous())}
}

// NewMetadata creates metadata stamped with the current time.
func NewMetadata(name, description, logo string, url *string, createdBy principal.Principal) Metadata {
	now := Clock()
	return Metadata{
		URL:         url,
		Logo:        &logo,
		Name:        &name,
		Description: &description,
		CreatedBy:   principal.AccountOf(createdBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func pick(next, current *string) string {
	if next != nil {
		return *next
	}
	return deref(current)
}

// Update merges u into m after validating the result. On failure m is
// left unchanged.
func (m *Metadata) Update(u UpdateMetadata) error {
	website := pick(u.URL, m.URL)
	args := ProjectInitArgs{
		Name:        pick(u.Name, m.Name),
		Description: pick(u.Description, m.Description),
		Logo:        pick(u.Logo, m.Logo),
		Website:     &website,
	}
	if err := args.Validate(); err != nil {
		return err
	}

	m.Name = &args.Name
	m.Description = &args.Description
	m.Logo = &args.Logo
	m.URL = args.Website
	m.UpdatedAt = Clock()
	return nil
}

// UpdateName sets the name and returns the old and new values.
func (m *Metadata) UpdateName(name string) (ActionValue, ActionValue) {
	old := deref(m.Name)
	m.Name = &name
	m.UpdatedAt = Clock()
	return StringValue(old), StringValue(name)
}

// UpdateDescription sets the description and returns the old and new values.
func (m *Metadata) UpdateDescription(description string) (ActionValue, ActionValue) {
	old := deref(m.Description)
	m.Description = &description
	m.UpdatedAt = Clock()
	return StringValue(old), StringValue(description)
}

// UpdateLogo sets the logo and returns the old and new values.
func (m *Metadata) UpdateLogo(logo string) (ActionValue, ActionValue) {
	old := deref(m.Logo)
	m.Logo = &logo
	m.UpdatedAt = Clock()
	return StringValue(old), StringValue(logo)
}

// UpdateWebsite sets or clears the url. Unset values are reported as "".
func (m *Metadata) UpdateWebsite(website *string) (ActionValue, ActionValue) {
	old := deref(m.URL)
	m.URL = website
	m.UpdatedAt = Clock()
	return StringValue(old), StringValue(deref(website))
}

// ToResponse fills unset text fields with "".
func (m Metadata) ToResponse() MetadataResponse {
	return MetadataResponse{
		Name:        deref(m.Name),
		Description: deref(m.Description),
		Logo:        deref(m.Logo),
		URL:         m.URL,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
