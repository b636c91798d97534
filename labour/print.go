package labour

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"time"

	"majdoorsathi/db"
	"majdoorsathi/filemgr"
	"majdoorsathi/models"
	"majdoorsathi/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// PrintCard handles GET /api/labour/card/print — a PDF of the approved
// labour card with a signed QR code that VerifyCard can check.
func PrintCard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var labour models.Labour
	if err := db.LaboursCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&labour); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Labour profile not found")
		return
	}
	if labour.Card == nil || labour.Card.State != models.CardStateApproved {
		utils.RespondWithError(w, http.StatusForbidden, "Card is not approved yet")
		return
	}
	card := labour.Card

	qrPayload := CardQRPayload(card.CardID, labour.LabourID, card.IssuedAt)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Majdoor Sathi Labour Card")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Card ID: "+card.CardID)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Name: "+card.FullName)
	pdf.Ln(8)
	if card.FatherName != "" {
		pdf.Cell(0, 8, "Father's Name: "+card.FatherName)
		pdf.Ln(8)
	}
	if card.DateOfBirth != "" {
		pdf.Cell(0, 8, "Date of Birth: "+card.DateOfBirth)
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, "Skill: "+labour.SkillType)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Address: "+labour.Location)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Issued: "+card.IssuedAt.Format("02 Jan 2006"))
	pdf.Ln(12)

	if card.Photo != "" {
		photoPath := filepath.Join(filemgr.ResolvePath(filemgr.EntityCard, filemgr.PicPhoto), card.Photo)
		imgOpts := gofpdf.ImageOptions{}
		pdf.ImageOptions(photoPath, 20, 110, 35, 0, false, imgOpts, 0, "")
	}

	qrOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("card-qr", qrOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("card-qr", 150, 40, 40, 40, false, qrOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=labour-card-"+card.CardID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
