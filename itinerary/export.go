package itinerary

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func exportSecret() []byte {
	if s := os.Getenv("EXPORT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("wayfare-export")
}

// exportPayload signs tripID|itineraryID|timestamp so a scanned QR can be
// verified as an unmodified export.
func exportPayload(tripID, itineraryID string) string {
	data := fmt.Sprintf("%s|%s|%d", tripID, itineraryID, time.Now().Unix())
	h := hmac.New(sha256.New, exportSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintItinerary renders the itinerary as a PDF with a verification QR.
func PrintItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, err := loadItinerary(r.Context(), ps.ByName("tripid"), ps.ByName("itineraryid"))
	if err != nil {
		writeErr(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(exportPayload(it.TripID, it.ItineraryID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, it.Name)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%d days, total cost %s", it.TotalDays, it.TotalCost.String()))
	pdf.Ln(10)

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 13)
		title := fmt.Sprintf("Day %d", day.DayNumber)
		if day.Date != "" {
			title += " - " + day.Date
		}
		pdf.Cell(0, 9, title)
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		if len(day.Activities) == 0 {
			pdf.Cell(0, 7, "  (free day)")
			pdf.Ln(7)
		}
		for _, entry := range day.Activities {
			a := entry.Activity
			pdf.Cell(0, 7, fmt.Sprintf("  %d. %s (%.1fh, %s)", entry.OrderInDay, a.Name, a.DurationHours, a.Price.String()))
			pdf.Ln(7)
		}
		if day.Lodging != nil {
			pdf.Cell(0, 7, fmt.Sprintf("  Stay: %s (%s)", day.Lodging.Name, day.Lodging.Price.String()))
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+it.ItineraryID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
