// Package i18n holds the localized error messages returned by the API.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the locales with a full message set. The first entry is the fallback.
var Supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(Supported)

// Message keys. They double as the stable error codes in API responses.
const (
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"
	CodeInvalidGoal        = "invalid_goal"
	CodeInvalidDuration    = "invalid_duration"
	CodeInvalidAmount      = "invalid_amount"
	CodeInvalidPrincipal   = "invalid_principal"
	CodeNotFound           = "not_found"
	CodeProjectEnded       = "project_ended"
	CodeNotYetDue          = "not_yet_due"
	CodeNotOwner           = "not_owner"
	CodeNotCompleted       = "not_completed"
	CodeAlreadyWithdrawn   = "already_withdrawn"
	CodeTimeNotElapsed     = "time_not_elapsed"
	CodeGoalMet            = "goal_met"
	CodeNotDonor           = "not_donor"
	CodeNothingToClaim     = "nothing_to_claim"
	CodeTransferFailed     = "transfer_failed"
	CodeJournalUnavailable = "journal_unavailable"
)

var messages = map[string][2]string{
	CodeBadRequest:         {"The request could not be understood.", "Permintaan tidak dapat diproses."},
	CodeUnauthorized:       {"A valid bearer token is required.", "Token bearer yang valid diperlukan."},
	CodeRateLimited:        {"Too many requests, slow down.", "Terlalu banyak permintaan, coba lagi nanti."},
	CodeInternal:           {"Something went wrong.", "Terjadi kesalahan pada server."},
	CodeInvalidGoal:        {"The funding goal must be greater than zero.", "Target dana harus lebih dari nol."},
	CodeInvalidDuration:    {"The campaign duration is out of range.", "Durasi kampanye tidak valid."},
	CodeInvalidAmount:      {"The amount must be greater than zero.", "Jumlah harus lebih dari nol."},
	CodeInvalidPrincipal:   {"The principal is missing.", "Identitas pengguna tidak ada."},
	CodeNotFound:           {"Project not found.", "Proyek tidak ditemukan."},
	CodeProjectEnded:       {"The project has already ended.", "Proyek sudah berakhir."},
	CodeNotYetDue:          {"The project deadline has not passed yet.", "Batas waktu proyek belum lewat."},
	CodeNotOwner:           {"Only the project owner can do this.", "Hanya pemilik proyek yang dapat melakukan ini."},
	CodeNotCompleted:       {"The project has not reached its goal.", "Proyek belum mencapai target."},
	CodeAlreadyWithdrawn:   {"The funds were already withdrawn.", "Dana sudah ditarik."},
	CodeTimeNotElapsed:     {"The project is still running.", "Proyek masih berjalan."},
	CodeGoalMet:            {"The project met its goal; refunds are closed.", "Proyek mencapai target, pengembalian dana ditutup."},
	CodeNotDonor:           {"You have nothing to refund on this project.", "Tidak ada donasi Anda yang dapat dikembalikan."},
	CodeNothingToClaim:     {"You have no reward tokens to claim.", "Tidak ada token hadiah untuk diklaim."},
	CodeTransferFailed:     {"The transfer could not be completed.", "Transfer tidak dapat diselesaikan."},
	CodeJournalUnavailable: {"The ledger could not record this change; nothing was applied. Try again later.", "Ledger tidak dapat mencatat perubahan ini dan tidak ada yang diterapkan. Coba lagi nanti."},
}

// Catalog renders messages for a locale.
type Catalog struct {
	cat catalog.Catalog
}

// NewCatalog builds the catalog of every known message.
func NewCatalog() *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for key, text := range messages {
		_ = b.SetString(language.English, key, text[0])
		_ = b.SetString(language.Indonesian, key, text[1])
	}
	return &Catalog{cat: b}
}

// Message returns the text for key in locale, falling back to English.
// Unknown keys are returned as is.
func (c *Catalog) Message(locale, key string) string {
	tag := Match(locale)
	return message.NewPrinter(tag, message.Catalog(c.cat)).Sprintf(key)
}

// Match picks the best supported locale for the given preference strings,
// each either a single tag or an Accept-Language header. Empty or
// unparsable preferences are skipped.
func Match(prefs ...string) language.Tag {
	tag, _ := MatchOK(prefs...)
	return tag
}

// MatchOK is Match that also reports whether any preference matched.
func MatchOK(prefs ...string) (language.Tag, bool) {
	for _, pref := range prefs {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, idx, conf := matcher.Match(tags...); conf != language.No {
			return Supported[idx], true
		}
	}
	return Supported[0], false
}
