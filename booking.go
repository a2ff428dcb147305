package aurora

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/aurora/date"
	"golang.org/x/crypto/argon2"
)

// DefaultPIN unlocks the booking details when none is configured.
const DefaultPIN = "007"

// ErrWrongPIN is returned by Gate.Unlock for any other PIN.
var ErrWrongPIN = errors.New("PIN 碼錯誤！(提示：007)")

// Flight is a booked flight leg.
type Flight struct {
	Number    string
	Leg       string // "First Leg", "Final Leg" or "Domestic"
	FromCode  string
	FromName  string
	ToCode    string
	ToName    string
	Date      date.Date
	Departure string
	Arrival   string
	Duration  string
	Boarding  string
	Gate      string
}

// Lodge is a booked accommodation.
type Lodge struct {
	Name      string
	SubName   string
	Stars     int
	CheckIn   date.Date
	CheckOut  date.Date
	InTime    string
	OutTime   string
	Address   string
	BookingID string
	Price     Money
}

// Nights returns the number of nights of the stay.
func (s Lodge) Nights() int {
	n := 0
	for d := s.CheckIn; d.Before(s.CheckOut); d = d.Add(1) {
		n++
	}
	return n
}

// Flights returns the booked flights.
func Flights() []Flight {
	return []Flight{{
		Number:    "BR 10",
		Leg:       "First Leg",
		FromCode:  "TPE",
		FromName:  "Taipei Taoyuan",
		ToCode:    "YVR",
		ToName:    "Vancouver Int.",
		Date:      date.New(2024, 2, 18),
		Departure: "23:55",
		Arrival:   "18:35",
		Duration:  "12h 45m",
		Boarding:  "23:15",
		Gate:      "D3",
	}}
}

// Stays returns the booked accommodations.
func Stays() []Lodge {
	return []Lodge{{
		Name:      "溫哥華市中心三房公寓",
		SubName:   "LXY Condo",
		Stars:     3,
		CheckIn:   date.New(2024, 2, 18),
		CheckOut:  date.New(2024, 2, 24),
		InTime:    "14:00",
		OutTime:   "10:00",
		Address:   "179 Keefer Place, Vancouver",
		BookingID: "16163234",
		Price:     NTD(31139),
	}}
}

// argon2id parameters of the PIN digest, sized for a three digit code.
const (
	pinTime    = 1
	pinMemory  = 8 * 1024
	pinThreads = 1
	pinKeyLen  = 32
	pinSaltLen = 16
)

// Gate hides the booking details behind a PIN. It only keeps a digest of the
// PIN, this is a privacy screen for shoulder surfers, not an access control.
type Gate struct {
	salt     []byte
	digest   []byte
	unlocked bool
}

// NewGate returns a locked gate for pin.
func NewGate(pin string) (*Gate, error) {
	salt := make([]byte, pinSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return &Gate{salt: salt, digest: pinDigest(pin, salt)}, nil
}

// ParseGate returns a locked gate from a digest produced by Gate.Digest.
func ParseGate(digest string) (*Gate, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 4 || parts[1] != "argon2id" {
		return nil, fmt.Errorf("invalid PIN digest %q", digest)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid PIN digest salt: %w", err)
	}
	sum, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid PIN digest: %w", err)
	}
	return &Gate{salt: salt, digest: sum}, nil
}

func pinDigest(pin string, salt []byte) []byte {
	return argon2.IDKey([]byte(pin), salt, pinTime, pinMemory, pinThreads, pinKeyLen)
}

// Digest encodes the gate as "$argon2id$<salt>$<digest>", suitable for a config file.
func (g *Gate) Digest() string {
	return "$argon2id$" + base64.RawStdEncoding.EncodeToString(g.salt) + "$" + base64.RawStdEncoding.EncodeToString(g.digest)
}

// Locked reports whether the details are still hidden.
func (g *Gate) Locked() bool { return !g.unlocked }

// Unlock opens the gate if pin matches. A wrong PIN leaves it locked.
func (g *Gate) Unlock(pin string) error {
	if len(g.digest) != pinKeyLen || subtle.ConstantTimeCompare(pinDigest(pin, g.salt), g.digest) != 1 {
		return ErrWrongPIN
	}
	g.unlocked = true
	return nil
}

// Lock hides the details again.
func (g *Gate) Lock() { g.unlocked = false }
