package worker

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	gormdb "github.com/thebtf/moodline/internal/db/gorm"
	"github.com/thebtf/moodline/pkg/models"
)

const (
	dateLayout        = "2006-01-02"
	defaultEntryLimit = 50
	weekDays          = 7
)

// handleListEntries returns entries in a timestamp range.
//
//	@Summary	List entries
//	@Tags		entries
//	@Produce	json
//	@Param		from	query		string	false	"Inclusive lower bound (RFC3339)"
//	@Param		to		query		string	false	"Exclusive upper bound (RFC3339)"
//	@Param		order	query		string	false	"asc or desc (default desc)"
//	@Param		limit	query		int		false	"Maximum entries (default 50, max 500)"
//	@Success	200		{object}	models.EntriesResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/entries [get]
func (s *Service) handleListEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := models.EntryQuery{
		Limit: gormdb.ParseLimitParam(r, defaultEntryLimit, gormdb.MaxRangeLimit),
	}

	var err error
	if v := query.Get("from"); v != "" {
		if q.From, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from: expected RFC3339")
			return
		}
	}
	if v := query.Get("to"); v != "" {
		if q.To, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to: expected RFC3339")
			return
		}
	}
	switch query.Get("order") {
	case "", "desc":
	case "asc":
		q.Ascending = true
	default:
		writeError(w, http.StatusBadRequest, "invalid order: expected asc or desc")
		return
	}

	s.writeEntries(w, r, q)
}

// handleDailyEntries returns one local day of entries, newest first.
//
//	@Summary	Entries for one day
//	@Tags		entries
//	@Produce	json
//	@Param		date	query		string	false	"Local date YYYY-MM-DD (default today)"
//	@Success	200		{object}	models.EntriesResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/entries/daily [get]
func (s *Service) handleDailyEntries(w http.ResponseWriter, r *http.Request) {
	day, ok := s.parseDay(w, r.URL.Query().Get("date"), 0)
	if !ok {
		return
	}

	s.writeEntries(w, r, models.EntryQuery{
		From:  day,
		To:    day.AddDate(0, 0, 1),
		Limit: defaultEntryLimit,
	})
}

// handleWeeklyEntries returns seven local days of entries, oldest first.
//
//	@Summary	Entries for seven days
//	@Tags		entries
//	@Produce	json
//	@Param		start	query		string	false	"First local date YYYY-MM-DD (default six days ago)"
//	@Success	200		{object}	models.WeeklyResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/entries/weekly [get]
func (s *Service) handleWeeklyEntries(w http.ResponseWriter, r *http.Request) {
	start, ok := s.parseDay(w, r.URL.Query().Get("start"), -(weekDays - 1))
	if !ok {
		return
	}
	end := start.AddDate(0, 0, weekDays)

	entries, err := s.entries.GetEntriesByRange(r.Context(), models.EntryQuery{
		From:      start,
		To:        end,
		Ascending: true,
		Limit:     gormdb.MaxRangeLimit,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to load weekly entries")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []*models.Entry{}
	}

	writeJSON(w, http.StatusOK, models.WeeklyResponse{
		Start:   start.Format(dateLayout),
		End:     end.AddDate(0, 0, -1).Format(dateLayout),
		Entries: entries,
		Days:    dailyStats(entries, start, s.location),
	})
}

// handleGetEntry returns a single entry.
//
//	@Summary	Get an entry
//	@Tags		entries
//	@Produce	json
//	@Param		id	path		string	true	"Entry ID"
//	@Success	200	{object}	models.Entry
//	@Failure	404	{object}	map[string]string
//	@Router		/api/entries/{id} [get]
func (s *Service) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := s.entries.GetEntryByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to load entry")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (s *Service) writeEntries(w http.ResponseWriter, r *http.Request, q models.EntryQuery) {
	entries, err := s.entries.GetEntriesByRange(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load entries")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []*models.Entry{}
	}
	writeJSON(w, http.StatusOK, models.EntriesResponse{Entries: entries, Count: len(entries)})
}

// parseDay resolves a YYYY-MM-DD value to local midnight. An empty value is
// today shifted by offsetDays. On failure a 400 has already been written.
func (s *Service) parseDay(w http.ResponseWriter, value string, offsetDays int) (time.Time, bool) {
	if value == "" {
		now := time.Now().In(s.location)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
		return today.AddDate(0, 0, offsetDays), true
	}
	day, err := time.ParseInLocation(dateLayout, value, s.location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

// dailyStats buckets entries into seven local days starting at start.
func dailyStats(entries []*models.Entry, start time.Time, loc *time.Location) []models.DayStats {
	days := make([]models.DayStats, weekDays)
	moodSums := make([]int, weekDays)
	moodCounts := make([]int, weekDays)
	index := make(map[string]int, weekDays)

	for i := range days {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		days[i] = models.DayStats{Date: date, EnergyDist: map[string]int{}}
		index[date] = i
	}

	for _, e := range entries {
		i, ok := index[e.Timestamp.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		days[i].Count++
		if e.Mood != nil {
			moodSums[i] += *e.Mood
			moodCounts[i]++
		}
		if e.Energy != nil {
			days[i].EnergyDist[*e.Energy]++
		}
	}

	for i := range days {
		if moodCounts[i] > 0 {
			avg := float64(moodSums[i]) / float64(moodCounts[i])
			days[i].AvgMood = &avg
		}
	}
	return days
}
