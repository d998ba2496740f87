package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"helmhub/pkg/models"
)

// Serves the offline dataset cmd/export-mirror writes. The file is
// re-read per request so a fresh export shows up without a restart.
func main() {
	addr := flag.String("addr", ":9000", "listen address")
	dataPath := flag.String("data", "data/mirror.json", "mirror dataset path")
	flag.Parse()

	http.HandleFunc("/mirror", func(w http.ResponseWriter, r *http.Request) {
		mirror, ok := loadMirror(w, *dataPath)
		if !ok {
			return
		}
		writeJSON(w, mirror)
	})

	http.HandleFunc("/mirror/venues", func(w http.ResponseWriter, r *http.Request) {
		mirror, ok := loadMirror(w, *dataPath)
		if !ok {
			return
		}
		writeJSON(w, mirror.Venues)
	})

	http.HandleFunc("/mirror/tuning", func(w http.ResponseWriter, r *http.Request) {
		mirror, ok := loadMirror(w, *dataPath)
		if !ok {
			return
		}
		writeJSON(w, mirror.Tuning)
	})

	log.Printf("[mirror] serving %s on %s", *dataPath, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func loadMirror(w http.ResponseWriter, path string) (models.Mirror, bool) {
	var mirror models.Mirror

	b, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "cannot read mirror dataset: "+err.Error(), http.StatusInternalServerError)
		return mirror, false
	}
	if err := json.Unmarshal(b, &mirror); err != nil {
		http.Error(w, "mirror dataset invalid: "+err.Error(), http.StatusInternalServerError)
		return mirror, false
	}
	return mirror, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "encode response:", err)
	}
}
