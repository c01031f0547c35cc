package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
	"github.com/yerinchoi/lingotalk-backend/internal/platform/localmedia"
)

// AvatarService renders the initials avatar shown next to chat turns and on
// the profile page. Generated avatars and uploads both land in local media.
type AvatarService interface {
	CreateUserAvatar(ctx context.Context, user *types.User) error
	UpdateUserAvatarFromImage(ctx context.Context, user *types.User, raw []byte) error
}

type avatarService struct {
	log   *logger.Logger
	media localmedia.Store

	bgColors []color.NRGBA
	fontFace font.Face
}

var defaultAvatarColors = []color.NRGBA{
	{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
	{R: 0x21, G: 0x96, B: 0xF3, A: 0xFF},
	{R: 0x9C, G: 0x27, B: 0xB0, A: 0xFF},
	{R: 0xFF, G: 0x57, B: 0x22, A: 0xFF},
	{R: 0x00, G: 0x96, B: 0x88, A: 0xFF},
	{R: 0x3F, G: 0x51, B: 0xB5, A: 0xFF},
	{R: 0xE9, G: 0x1E, B: 0x63, A: 0xFF},
}

func NewAvatarService(log *logger.Logger, media localmedia.Store) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath != "" {
		f, err := loadFontFace(fontPath, 206)
		if err != nil {
			return nil, fmt.Errorf("load avatar font: %w", err)
		}
		face = f
	} else {
		serviceLog.Warn("AVATAR_FONT not set, avatars will render without initials")
	}

	return &avatarService{
		log:      serviceLog,
		media:    media,
		bgColors: defaultAvatarColors,
		fontFace: face,
	}, nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	as.ensureAvatarColor(user)

	buf, err := as.renderInitialsAvatar(user)
	if err != nil {
		return err
	}
	return as.storeAvatar(ctx, user, buf.Bytes())
}

func (as *avatarService) UpdateUserAvatarFromImage(ctx context.Context, user *types.User, raw []byte) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return err
	}
	return as.storeAvatar(ctx, user, processed.Bytes())
}

func (as *avatarService) storeAvatar(ctx context.Context, user *types.User, data []byte) error {
	oldKey := strings.TrimSpace(user.AvatarPath)

	// Versioned key so browsers never serve a stale cached avatar.
	newKey := fmt.Sprintf("avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	url, err := as.media.Save(ctx, newKey, data)
	if err != nil {
		return fmt.Errorf("save avatar: %w", err)
	}
	user.AvatarPath = newKey
	user.AvatarURL = url

	if oldKey != "" && oldKey != newKey {
		if err := as.media.Delete(ctx, oldKey); err != nil {
			as.log.Warn("Failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}
	return nil
}

func (as *avatarService) renderInitialsAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512
	var buf bytes.Buffer

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(user.AvatarColor))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	if as.fontFace != nil {
		initials := computeInitials(user.Username)
		dc.SetFontFace(as.fontFace)
		tw, th := dc.MeasureString(initials)
		cx, cy := float64(size)/2, float64(size)/2
		dc.SetColor(color.White)
		dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)
	}

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode png: %w", err)
	}
	return buf, nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square.
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

func (as *avatarService) ensureAvatarColor(user *types.User) {
	if strings.TrimSpace(user.AvatarColor) != "" {
		return
	}
	pick := as.bgColors[rand.Intn(len(as.bgColors))]
	user.AvatarColor = fmt.Sprintf("#%02X%02X%02X", pick.R, pick.G, pick.B)
}

func (as *avatarService) pickColor(hexStr string) color.NRGBA {
	h := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(hexStr)), "#")
	if len(h) == 6 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(h, "%02X%02X%02X", &r, &g, &b); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
		}
	}
	return as.bgColors[rand.Intn(len(as.bgColors))]
}

func computeInitials(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "?"
	}
	parts := strings.Fields(username)
	if len(parts) >= 2 {
		return strings.ToUpper(parts[0][:1] + parts[1][:1])
	}
	runes := []rune(parts[0])
	if len(runes) >= 2 {
		return strings.ToUpper(string(runes[:2]))
	}
	return strings.ToUpper(string(runes))
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse ttf: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
