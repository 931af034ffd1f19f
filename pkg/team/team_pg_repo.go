package team

import (
	"errors"
	"strings"
	"time"

	"github.com/Asjdnnc/hackzilla/pkg/qrpayload"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counterRow is the single row of team_id_counters everything increments.
const counterRow = 1

type TeamsRepoPg struct {
	logger *zap.SugaredLogger
	db     *gorm.DB
}

func NewTeamsRepoPg(logger *zap.SugaredLogger, db *gorm.DB) *TeamsRepoPg {
	return &TeamsRepoPg{
		logger: logger,
		db:     db,
	}
}

// Create allocates the next sequential team id, snapshots the QR payload from
// the validated input and inserts the team with its members, all in one
// transaction. A failed insert rolls the counter back, so ids stay contiguous.
func (repo *TeamsRepoPg) Create(t *Team) (*Team, error) {
	repo.logger.Debugw("Create()", "name", t.Name, "membersCount", len(t.Members))

	var created Team
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		seq, err := repo.nextSeqInTx(tx)
		if err != nil {
			repo.logger.Errorw("error allocating team id", "name", t.Name, "err", err)
			return err
		}
		if seq > MaxTeams {
			repo.logger.Warnw("team id band exhausted", "name", t.Name, "seq", seq)
			return ErrCapacityExhausted
		}
		t.TeamID = FormatTeamID(seq)

		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now().UTC()
		}

		// The payload is built from the input state, never re-read from the
		// store: what got validated is exactly what gets printed.
		raw, err := qrpayload.Encode(Snapshot(t))
		if err != nil {
			repo.logger.Errorw("error encoding qr payload", "name", t.Name, "err", err)
			return err
		}
		t.QRData = raw

		members := t.Members
		t.Members = nil
		if err := tx.Create(t).Error; err != nil {
			// gorm does not always wrap constraint errors on complex
			// operations, so the SQLSTATE has to be checked by hand
			if isDuplicate(err) {
				if strings.Contains(err.Error(), "team_id") {
					// only possible when team rows were inserted behind the
					// counter's back; fail and let the caller re-register
					repo.logger.Errorw("allocated team id already taken", "teamID", t.TeamID)
					return ErrTeamIDConflict
				}
				repo.logger.Warnw("couldnt create team - name already exists", "name", t.Name)
				return ErrTeamExists
			}
			repo.logger.Errorw("error creating team", "name", t.Name, "err", err)
			return err
		}

		if len(members) > 0 {
			rows := make([]Member, len(members))
			for i, m := range members {
				m.TeamID = t.ID
				rows[i] = m
			}
			if err := tx.Create(&rows).Error; err != nil {
				repo.logger.Errorw("error creating team members", "teamID", t.TeamID, "err", err)
				return err
			}
		}

		return tx.Preload("Members").First(&created, "team_id = ?", t.TeamID).Error
	})

	if err != nil {
		repo.logger.Errorw("failed to create team", "name", t.Name, "err", err)
		return nil, err
	}

	repo.logger.Debugw("created team", "teamID", created.TeamID, "name", created.Name)
	return &created, nil
}

func (repo *TeamsRepoPg) nextSeqInTx(tx *gorm.DB) (int, error) {
	counter := IDCounter{ID: counterRow}
	res := tx.Model(&counter).
		Where("id = ?", counterRow).
		Clauses(clause.Returning{}).
		Update("seq", gorm.Expr("seq + 1"))

	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		counter = IDCounter{ID: counterRow, Seq: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	}

	return counter.Seq, nil
}

func (repo *TeamsRepoPg) GetByTeamID(teamID string) (*Team, error) {
	repo.logger.Debugw("GetByTeamID()", "teamID", teamID)

	var t Team
	if err := repo.db.
		Preload("Members").
		First(&t, "team_id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			repo.logger.Warnw("team does not exist", "teamID", teamID)
			return nil, ErrTeamNotFound
		}
		repo.logger.Errorw("failed to query team", "teamID", teamID, "err", err)
		return nil, err
	}

	repo.logger.Debugw("team found", "teamID", teamID)
	return &t, nil
}

// List returns every team, newest first. No pagination: the id band caps the
// dataset at 99 rows.
func (repo *TeamsRepoPg) List() ([]*Team, error) {
	repo.logger.Debugw("List()")

	var teams []*Team
	if err := repo.db.
		Preload("Members").
		Order("created_at DESC").
		Find(&teams).Error; err != nil {
		repo.logger.Errorw("failed to list teams", "err", err)
		return nil, err
	}

	repo.logger.Debugw("listed teams", "count", len(teams))
	return teams, nil
}

// Save persists every status and profile column of t wholesale. When
// t.Members is non-nil the member rows are replaced, not merged. QRData is
// written as-is: the scan flow hands back the stored value untouched, the
// admin edit flow re-encodes it before calling Save.
func (repo *TeamsRepoPg) Save(t *Team) (*Team, error) {
	repo.logger.Debugw("Save()", "teamID", t.TeamID)

	var saved Team
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Team{}).
			Where("id = ?", t.ID).
			Select("name", "leader", "status", "allotment",
				"food_lunch", "food_dinner", "food_snacks",
				"lunch_count", "dinner_count", "snacks_count", "qr_data").
			Updates(t)

		if res.Error != nil {
			if isDuplicate(res.Error) {
				repo.logger.Warnw("couldnt save team - name already exists", "teamID", t.TeamID, "name", t.Name)
				return ErrTeamExists
			}
			repo.logger.Errorw("error saving team", "teamID", t.TeamID, "err", res.Error)
			return res.Error
		}
		if res.RowsAffected == 0 {
			repo.logger.Warnw("team does not exist", "teamID", t.TeamID)
			return ErrTeamNotFound
		}

		if t.Members != nil {
			if err := tx.Where("team_id = ?", t.ID).Delete(&Member{}).Error; err != nil {
				repo.logger.Errorw("error replacing team members", "teamID", t.TeamID, "err", err)
				return err
			}
			if len(t.Members) > 0 {
				rows := make([]Member, len(t.Members))
				for i, m := range t.Members {
					m.ID = 0
					m.TeamID = t.ID
					rows[i] = m
				}
				if err := tx.Create(&rows).Error; err != nil {
					repo.logger.Errorw("error replacing team members", "teamID", t.TeamID, "err", err)
					return err
				}
			}
		}

		return tx.Preload("Members").First(&saved, "id = ?", t.ID).Error
	})

	if err != nil {
		repo.logger.Errorw("failed to save team", "teamID", t.TeamID, "err", err)
		return nil, err
	}

	repo.logger.Debugw("saved team", "teamID", saved.TeamID)
	return &saved, nil
}

// Delete removes a team by its storage id. Lookups everywhere else use the
// 4-char team id; deletion deliberately does not.
func (repo *TeamsRepoPg) Delete(id uint32) error {
	repo.logger.Debugw("Delete()", "id", id)

	err := repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&Member{}).Error; err != nil {
			repo.logger.Errorw("error deleting team members", "id", id, "err", err)
			return err
		}

		res := tx.Delete(&Team{}, id)
		if res.Error != nil {
			repo.logger.Errorw("error deleting team", "id", id, "err", res.Error)
			return res.Error
		}
		if res.RowsAffected == 0 {
			repo.logger.Warnw("team does not exist", "id", id)
			return ErrTeamNotFound
		}
		return nil
	})

	if err != nil {
		return err
	}

	repo.logger.Debugw("deleted team", "id", id)
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "SQLSTATE 23505")
}
