package session

import (
	"strconv"

	"github.com/bwmarrin/snowflake"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	bucketSession = "session"

	keyUser        = "user"
	keySection     = "current_section"
	keyFulfillment = "section_fulfillment"
	keyStore       = "selected_store"
	keyDeviceID    = "device_id"
)

// ErrNoSection is returned when no checkout session is currently open.
var ErrNoSection = errors.New("session: no open section")

// Store is the device key-value store backing session continuity between
// runs: cached profile, current section, selected store and the device
// identifier used for gateway fingerprinting. All access goes through one
// bbolt file under the workdir.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSession))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init session bucket")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) putString(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSession)).Put([]byte(key), []byte(value))
	})
}

func (s *Store) getString(key string) string {
	var value string
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketSession)).Get([]byte(key)); v != nil {
			value = string(v)
		}
		return nil
	})
	return value
}

func (s *Store) deleteKeys(keys ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSession))
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveUser caches the profile after a successful login.
func (s *Store) SaveUser(user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshal user")
	}
	return s.putString(keyUser, string(data))
}

// User returns the cached profile, or nil when nobody is logged in.
func (s *Store) User() *domain.User {
	raw := s.getString(keyUser)
	if raw == "" {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		zap.L().Warn("session: cached user unreadable, discarding", zap.Error(err))
		return nil
	}
	return &user
}

// SaveSection records the open section and its fulfillment mode.
func (s *Store) SaveSection(section *domain.Section) error {
	if err := s.putString(keySection, strconv.FormatInt(section.ID, 10)); err != nil {
		return err
	}
	return s.putString(keyFulfillment, strconv.Itoa(int(section.Fulfillment)))
}

// CurrentSection returns the open section, or ErrNoSection.
func (s *Store) CurrentSection() (*domain.Section, error) {
	raw := s.getString(keySection)
	if raw == "" {
		return nil, ErrNoSection
	}
	id := cast.ToInt64(raw)
	if id == 0 {
		return nil, ErrNoSection
	}
	return &domain.Section{
		ID:          id,
		Fulfillment: domain.Fulfillment(cast.ToInt(s.getString(keyFulfillment))),
	}, nil
}

// ClearSection drops the section, its fulfillment mode and the selected
// store. A new purchase always starts from store selection.
func (s *Store) ClearSection() error {
	return s.deleteKeys(keySection, keyFulfillment, keyStore)
}

// SaveStore records the store the customer is ordering from.
func (s *Store) SaveStore(store *domain.Store) error {
	data, err := json.Marshal(store)
	if err != nil {
		return errors.Wrap(err, "marshal store")
	}
	return s.putString(keyStore, string(data))
}

// SelectedStore returns the chosen store, or nil when none is selected.
func (s *Store) SelectedStore() *domain.Store {
	raw := s.getString(keyStore)
	if raw == "" {
		return nil
	}
	var store domain.Store
	if err := json.Unmarshal([]byte(raw), &store); err != nil {
		return nil
	}
	return &store
}

// DeviceID returns the device identifier used for payment gateway
// fingerprinting. It is generated once and persisted for the device's life.
func (s *Store) DeviceID() (string, error) {
	if id := s.getString(keyDeviceID); id != "" {
		return id, nil
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		return "", errors.Wrap(err, "device id generator")
	}
	id := node.Generate().String()
	if err := s.putString(keyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}

// Logout clears the cached profile and every piece of session state except
// the device identifier, which outlives accounts.
func (s *Store) Logout() error {
	return s.deleteKeys(keyUser, keySection, keyFulfillment, keyStore)
}
