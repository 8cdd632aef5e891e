package recipes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"plateful/db"
	"plateful/models"
	"plateful/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportRecipePDF renders a recipe as a printable PDF with a QR code
// linking back to the catalog entry.
func ExportRecipePDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var recipe models.Recipe
	if err := db.RecipeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	shareURL := fmt.Sprintf("%s/recipes/%s", baseURL, recipe.ID.Hex())

	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, recipe.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if recipe.Cuisine != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Cuisine: %s", recipe.Cuisine))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Diet: %s", DefaultClassifier.Diet(recipe.Ingredients)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Ingredients")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, line := range recipe.Ingredients {
		entry := line.Name
		if line.Quantity != 0 {
			entry = fmt.Sprintf("%g %s %s", line.Quantity, line.Unit, line.Name)
		}
		pdf.Cell(0, 7, "- "+entry)
		pdf.Ln(6)
	}

	if recipe.Instructions != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Instructions")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, recipe.Instructions, "", "L", false)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=recipe-"+recipe.ID.Hex()+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
