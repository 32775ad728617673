// Command mockapi serves a small fake of the upstream anime API for local
// runs of the server, worker and reminder function.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"animeschedule/internal/models"
	"animeschedule/internal/schedule"

	"github.com/gorilla/mux"
)

const basePath = "/anime/samehadaku"

var catalog = []models.AnimeCard{
	{AnimeID: "sousou-no-frieren", Title: "Sousou no Frieren", Status: "Ongoing", Score: "9.1", Type: "TV"},
	{AnimeID: "one-piece", Title: "One Piece", Status: "Ongoing", Score: "8.7", Type: "TV"},
	{AnimeID: "kusuriya-no-hitorigoto", Title: "Kusuriya no Hitorigoto", Status: "Completed", Score: "8.9", Type: "TV"},
	{AnimeID: "kimi-no-na-wa", Title: "Kimi no Na wa", Status: "Completed", Score: "8.8", Type: "Movie"},
}

func writeData(w http.ResponseWriter, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Envelope{
		Status:     models.StatusSuccess,
		Data:       raw,
		Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1},
	})
}

func writeFailure(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Envelope{Status: "failed", Message: message})
}

func listHandler(filter func(models.AnimeCard) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []models.AnimeCard
		for _, a := range catalog {
			if filter(a) {
				list = append(list, a)
			}
		}
		writeData(w, models.AnimeListData{AnimeList: list})
	}
}

// scheduleDays puts the first catalog entry on air now and the rest later
// in the week, so the live check and reminders have something to find.
func scheduleDays(now time.Time) []models.ScheduleDay {
	days := make([]models.ScheduleDay, 0, len(schedule.AllDays))
	for _, bucket := range schedule.AllDays {
		days = append(days, models.ScheduleDay{Day: bucket.Weekday().String()})
	}

	today := int(now.Weekday()+6) % 7
	for i, a := range catalog {
		if a.Status != "Ongoing" {
			continue
		}
		entry := models.ScheduleEntry{
			AnimeID: a.AnimeID,
			Title:   a.Title,
			Score:   a.Score,
			Type:    a.Type,
			Genres:  models.Genres{"Adventure", "Fantasy"},
		}
		if i == 0 {
			entry.Estimation = fmt.Sprintf("0d %dh %dm", now.Hour(), now.Minute())
			days[today].AnimeList = append(days[today].AnimeList, entry)
			continue
		}
		entry.Estimation = fmt.Sprintf("%dd %dh %dm", i, (now.Hour()+i)%24, now.Minute())
		days[(today+i)%7].AnimeList = append(days[(today+i)%7].AnimeList, entry)
	}
	return days
}

func main() {
	port := flag.String("port", "8081", "Port to listen on")
	timezone := flag.String("tz", "Asia/Jakarta", "Timezone of the generated estimations")
	flag.Parse()

	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		log.Fatalf("Unknown timezone %q: %v", *timezone, err)
	}

	r := mux.NewRouter()
	api := r.PathPrefix(basePath).Subrouter()

	api.HandleFunc("/home", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, models.HomeData{
			Recent: models.AnimeListData{AnimeList: catalog[:2]},
			Movie:  models.AnimeListData{AnimeList: catalog[3:]},
		})
	}).Methods(http.MethodGet)

	api.HandleFunc("/ongoing", listHandler(func(a models.AnimeCard) bool { return a.Status == "Ongoing" })).Methods(http.MethodGet)
	api.HandleFunc("/completed", listHandler(func(a models.AnimeCard) bool { return a.Status == "Completed" })).Methods(http.MethodGet)
	api.HandleFunc("/popular", listHandler(func(a models.AnimeCard) bool { return true })).Methods(http.MethodGet)
	api.HandleFunc("/movies", listHandler(func(a models.AnimeCard) bool { return a.Type == "Movie" })).Methods(http.MethodGet)

	api.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		listHandler(func(a models.AnimeCard) bool {
			return strings.Contains(strings.ToLower(a.Title), q)
		})(w, r)
	}).Methods(http.MethodGet)

	api.HandleFunc("/anime/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		for _, a := range catalog {
			if a.AnimeID == id {
				writeData(w, models.AnimeDetail{
					Title:     a.Title,
					Score:     a.Score,
					Status:    a.Status,
					Type:      a.Type,
					GenreList: models.Genres{"Adventure", "Fantasy"},
					Synopsis:  models.Synopsis{Paragraphs: []string{"Mock synopsis for " + a.Title + "."}},
					EpisodeList: []models.EpisodeRef{
						{Title: "1", EpisodeID: a.AnimeID + "-episode-1"},
						{Title: "2", EpisodeID: a.AnimeID + "-episode-2"},
					},
				})
				return
			}
		}
		writeFailure(w, "Anime not found")
	}).Methods(http.MethodGet)

	api.HandleFunc("/episode/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		writeData(w, models.EpisodeDetail{
			Title:               strings.ReplaceAll(id, "-", " "),
			DefaultStreamingURL: "https://stream.example/" + id,
		})
	}).Methods(http.MethodGet)

	api.HandleFunc("/server/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, models.ServerData{URL: "https://stream.example/server/" + mux.Vars(r)["id"]})
	}).Methods(http.MethodGet)

	api.HandleFunc("/schedule", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, models.ScheduleResponse{Days: scheduleDays(time.Now().In(loc))})
	}).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	log.Printf("Mock API listening on :%s%s", *port, basePath)
	if err := http.ListenAndServe(":"+*port, r); err != nil {
		log.Fatalf("Mock API stopped: %v", err)
	}
}
