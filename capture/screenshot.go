package capture

import (
	"encoding/base64"
	"fmt"

	"github.com/use-agent/pagegrab/browser"
	"github.com/use-agent/pagegrab/models"
)

// captureScreenshot grabs the page image and packages it with a
// human-readable size label.
func captureScreenshot(page browser.Page) (*models.Screenshot, error) {
	img, err := page.Screenshot()
	if err != nil {
		return nil, err
	}
	return &models.Screenshot{
		Size:   FormatSize(len(img)),
		Base64: base64.StdEncoding.EncodeToString(img),
	}, nil
}

// FormatSize renders a byte count with binary units: plain bytes below
// 1024, then KB/MB/GB with two-decimal precision.
func FormatSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
	}
}
