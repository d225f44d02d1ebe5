package models

import "strings"

// Accepted identity documents.
const (
	IDProofAadhar         = "Aadhar"
	IDProofPan            = "Pan"
	IDProofPassport       = "Passport"
	IDProofDrivingLicense = "Driving License"
)

// IDProofTypes lists the id proof options in the order the form offers them.
var IDProofTypes = []string{IDProofAadhar, IDProofPan, IDProofPassport, IDProofDrivingLicense}

type Member struct {
	ID                string    `json:"id"`
	AccountNumber     string    `json:"account_number"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             *string   `json:"email"`
	Address           string    `json:"address"`
	IDProofType       string    `json:"id_proof_type"`
	IDProofNumber     string    `json:"id_proof_number"`
	IsCommitteeMember bool      `json:"is_committee_member"`
	CommitteePosition *string   `json:"committee_position"`
	CreatedAt         Timestamp `json:"created_at"`
	IsActive          bool      `json:"is_active"`
}

// CreateMemberRequest is the body of POST members. committee_position is
// sent whether or not the member is on the committee.
type CreateMemberRequest struct {
	Name              string `json:"name" validate:"required,notblank"`
	Phone             string `json:"phone" validate:"required,notblank"`
	Email             string `json:"email" validate:"omitempty,email"`
	Address           string `json:"address" validate:"required,notblank"`
	IDProofType       string `json:"id_proof_type" validate:"required,oneof=Aadhar Pan Passport 'Driving License'"`
	IDProofNumber     string `json:"id_proof_number" validate:"required,notblank"`
	IsCommitteeMember bool   `json:"is_committee_member"`
	CommitteePosition string `json:"committee_position"`
}

// Badge is a coloured role label shown next to a member.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

const (
	BadgeGreen = "green"
	BadgeBlue  = "blue"
)

// RoleBadge labels committee members with their position (green) and
// everyone else as a regular member (blue).
func (m Member) RoleBadge() Badge {
	if !m.IsCommitteeMember {
		return Badge{Label: "Regular Member", Color: BadgeBlue}
	}
	if m.CommitteePosition == nil || strings.TrimSpace(*m.CommitteePosition) == "" {
		return Badge{Label: "Committee Member", Color: BadgeGreen}
	}
	return Badge{Label: *m.CommitteePosition, Color: BadgeGreen}
}

// OptionLabel is the member picker text.
func (m Member) OptionLabel() string {
	return m.Name + " - " + m.AccountNumber
}

// EmailOrDash renders the optional email for tables.
func (m Member) EmailOrDash() string {
	if m.Email == nil || *m.Email == "" {
		return "-"
	}
	return *m.Email
}
