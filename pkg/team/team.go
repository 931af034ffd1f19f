package team

import (
	"errors"
	"fmt"
	"time"

	"github.com/Asjdnnc/hackzilla/pkg/qrpayload"
)

var (
	ErrTeamExists        = errors.New("TEAM_EXISTS")
	ErrTeamNotFound      = errors.New("TEAM_NOT_FOUND")
	ErrCapacityExhausted = errors.New("TEAM_ID_CAPACITY_EXHAUSTED")
	ErrTeamIDConflict    = errors.New("TEAM_ID_CONFLICT")
)

// Status is the two-state flag used for check-in, meals and allotment alike.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

func (s Status) Known() bool {
	return s == StatusValid || s == StatusInvalid
}

type Member struct {
	ID          uint32 `gorm:"primarykey" json:"-"`
	TeamID      uint32 `gorm:"index;not null" json:"-"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	CollegeName string `gorm:"type:varchar(255);not null" json:"collegeName"`
	IsFromIIITS bool   `gorm:"not null;default:false" json:"isFromIIITS"`
}

// FoodStatus tracks the three meals served during the event. Stored flattened
// into the teams table, serialized as a nested object.
type FoodStatus struct {
	Lunch  Status `gorm:"type:varchar(10);not null;default:'invalid'" json:"lunch"`
	Dinner Status `gorm:"type:varchar(10);not null;default:'invalid'" json:"dinner"`
	Snacks Status `gorm:"type:varchar(10);not null;default:'invalid'" json:"snacks"`
}

// NewFoodStatus returns the all-invalid initial record.
func NewFoodStatus() FoodStatus {
	return FoodStatus{Lunch: StatusInvalid, Dinner: StatusInvalid, Snacks: StatusInvalid}
}

type Team struct {
	// ID is the storage identity. Deletion is keyed by it while every other
	// lookup goes through TeamID. The asymmetry is part of the public
	// contract and is kept on purpose.
	ID          uint32     `gorm:"primarykey" json:"id"`
	TeamID      string     `gorm:"type:varchar(4);uniqueIndex;not null;column:team_id" json:"teamId"`
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Leader      string     `gorm:"type:varchar(100);not null" json:"leader"`
	Members     []Member   `gorm:"foreignKey:TeamID;references:ID;constraint:OnDelete:CASCADE" json:"members"`
	Status      Status     `gorm:"type:varchar(10);not null;default:'invalid'" json:"status"`
	FoodStatus  FoodStatus `gorm:"embedded;embeddedPrefix:food_" json:"foodStatus"`
	Allotment   Status     `gorm:"type:varchar(10);not null;default:'invalid'" json:"allotment"`
	LunchCount  int        `gorm:"not null;default:0;column:lunch_count" json:"lunchcount"`
	DinnerCount int        `gorm:"not null;default:0;column:dinner_count" json:"dinnercount"`
	SnacksCount int        `gorm:"not null;default:0;column:snacks_count" json:"snackscount"`
	// QRData is the payload printed on the team's physical QR code. It is
	// written once at registration and never touched by the scan flow, so
	// the printed artifact stays scannable for the whole event.
	QRData    string    `gorm:"type:text;not null;column:qr_data" json:"qrData"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IDCounter backs sequential team id allocation. A single row is incremented
// inside the registration transaction, so a failed insert rolls the sequence
// back and ids stay contiguous.
type IDCounter struct {
	ID  uint32 `gorm:"primarykey"`
	Seq int    `gorm:"not null;default:0"`
}

func (IDCounter) TableName() string {
	return "team_id_counters"
}

const (
	// teamIDPrefix is the event-year band all ids live in: 2501..2599.
	teamIDPrefix = "25"
	// MaxTeams is how many ids the band can hold.
	MaxTeams = 99
)

// FormatTeamID renders a sequence number as the human-typeable 4-char code.
func FormatTeamID(seq int) string {
	return fmt.Sprintf("%s%02d", teamIDPrefix, seq)
}

// Snapshot maps a team to the payload printed inside its QR code.
func Snapshot(t *Team) qrpayload.Payload {
	members := make([]qrpayload.Member, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, qrpayload.Member{
			Name:        m.Name,
			CollegeName: m.CollegeName,
			IsFromIIITS: m.IsFromIIITS,
		})
	}
	return qrpayload.Payload{
		TeamID:   t.TeamID,
		TeamName: t.Name,
		Leader:   t.Leader,
		Members:  members,
		Status:   string(t.Status),
		FoodStatus: qrpayload.FoodStatus{
			Lunch:  string(t.FoodStatus.Lunch),
			Dinner: string(t.FoodStatus.Dinner),
			Snacks: string(t.FoodStatus.Snacks),
		},
		Allotment: string(t.Allotment),
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type TeamsRepo interface {
	Create(t *Team) (*Team, error)
	GetByTeamID(teamID string) (*Team, error)
	List() ([]*Team, error)
	Save(t *Team) (*Team, error)
	Delete(id uint32) error
}
