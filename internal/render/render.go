package render

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"loyalty-system/internal/config"
	"loyalty-system/internal/domain"
)

// Card canvas. The layout is presentation output, not business data; only
// the QR payload shape is load-bearing.
const (
	cardW = 400
	cardH = 250
	qrPx  = 96
)

var (
	frontBg = color.RGBA{R: 30, G: 100, B: 160, A: 255}
	backBg  = color.RGBA{R: 20, G: 60, B: 100, A: 255}
	ink     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type Artifacts struct {
	Front string
	Back  string
	QR    string
}

// qrPayload is what the embedded QR code encodes.
type qrPayload struct {
	CardID       int    `json:"card_id"`
	CustomerName string `json:"customer_name"`
}

type Generator struct {
	dir   string
	title string
}

func NewGenerator(cfg config.RenderConfig) *Generator {
	return &Generator{dir: cfg.OutputDir, title: cfg.Title}
}

// Render draws the front and back card images and the standalone QR raster
// for a finalized card, returning the file paths.
func (g *Generator) Render(card domain.Card) (Artifacts, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("create output dir: %w", err)
	}

	payload, err := json.Marshal(qrPayload{CardID: card.ID, CustomerName: card.CustomerName})
	if err != nil {
		return Artifacts{}, fmt.Errorf("encode qr payload: %w", err)
	}
	qr, err := qrcode.New(string(payload), qrcode.Medium)
	if err != nil {
		return Artifacts{}, fmt.Errorf("generate qr: %w", err)
	}

	a := Artifacts{
		Front: filepath.Join(g.dir, fmt.Sprintf("card_%d_front.png", card.ID)),
		Back:  filepath.Join(g.dir, fmt.Sprintf("card_%d_back.png", card.ID)),
		QR:    filepath.Join(g.dir, fmt.Sprintf("card_%d_qr.png", card.ID)),
	}

	if err := qr.WriteFile(128, a.QR); err != nil {
		return Artifacts{}, fmt.Errorf("write qr: %w", err)
	}
	if err := writePNG(a.Front, g.front(card, qr.Image(qrPx))); err != nil {
		return Artifacts{}, fmt.Errorf("write front: %w", err)
	}
	if err := writePNG(a.Back, g.back(card)); err != nil {
		return Artifacts{}, fmt.Errorf("write back: %w", err)
	}
	return a, nil
}

func (g *Generator) front(card domain.Card, qr image.Image) image.Image {
	img := newCanvas(frontBg)
	drawText(img, 10, 30, g.title)
	drawText(img, 10, 80, "Holder: "+card.CustomerName)
	drawText(img, 10, 100, fmt.Sprintf("Card no. %04d", card.ID))
	drawText(img, 10, 120, "Issued: "+card.IssuedAt.Format("2006-01-02"))
	// QR bottom-right corner.
	dst := image.Rect(cardW-qrPx-12, cardH-qrPx-12, cardW-12, cardH-12)
	draw.Draw(img, dst, qr, qr.Bounds().Min, draw.Src)
	return img
}

func (g *Generator) back(card domain.Card) image.Image {
	img := newCanvas(backBg)
	drawText(img, 10, 40, "Branch: "+card.Branch)
	drawText(img, 10, 70, "Bank: "+card.Bank)
	drawText(img, 10, 100, "Phone: "+card.Phone)
	drawText(img, 10, 130, "Delivery: "+card.DeliveryMethod)
	drawText(img, 10, 220, "Present this card with any order.")
	return img
}

func newCanvas(bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cardW, cardH))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

func drawText(dst *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
