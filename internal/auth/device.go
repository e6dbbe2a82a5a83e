package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/JMURv/iptv-gateway/internal/dto"
	md "github.com/JMURv/iptv-gateway/internal/models"
)

// Fingerprint derives the session's natural key from the raw client
// identifier and origin address. Same app on the same network path maps
// to the same fingerprint; a changed IP intentionally reads as a new
// device.
func Fingerprint(d *dto.DeviceRequest) string {
	sum := sha256.Sum256([]byte(d.UA + ":" + d.IP))
	return hex.EncodeToString(sum[:])[:32]
}

type deviceRule struct {
	pattern *regexp.Regexp
	name    string
	dtype   md.DeviceType
}

// Rules are evaluated in order against the lowercased identifier and
// the first match wins: dedicated IPTV apps first, then TV platforms,
// then mobile, then desktop browsers. Order matters: "android tv"
// must be claimed before plain "android".
var deviceRules = []deviceRule{
	{regexp.MustCompile(`tivimate`), "TiviMate", md.DeviceTV},
	{regexp.MustCompile(`iptv smarters|smarters`), "IPTV Smarters", md.DeviceMobile},
	{regexp.MustCompile(`xciptv`), "XCIPTV", md.DeviceMobile},
	{regexp.MustCompile(`ott navigator`), "OTT Navigator", md.DeviceTV},
	{regexp.MustCompile(`perfect player`), "Perfect Player", md.DeviceTV},
	{regexp.MustCompile(`kodi`), "Kodi", md.DeviceTV},
	{regexp.MustCompile(`vlc`), "VLC Media Player", md.DeviceDesktop},
	{regexp.MustCompile(`mpv`), "MPV Player", md.DeviceDesktop},
	{regexp.MustCompile(`iptv pro`), "IPTV Pro", md.DeviceMobile},
	{regexp.MustCompile(`gse`), "GSE Smart IPTV", md.DeviceMobile},
	{regexp.MustCompile(`implayer`), "implayer", md.DeviceTV},
	{regexp.MustCompile(`duplex`), "Duplex IPTV", md.DeviceTV},
	{regexp.MustCompile(`ibo player`), "iBO Player", md.DeviceTV},
	{regexp.MustCompile(`lazy iptv`), "Lazy IPTV", md.DeviceTV},

	{regexp.MustCompile(`smart-?tv`), "Smart TV", md.DeviceTV},
	{regexp.MustCompile(`webos`), "LG Smart TV", md.DeviceTV},
	{regexp.MustCompile(`tizen`), "Samsung Smart TV", md.DeviceTV},
	{regexp.MustCompile(`roku`), "Roku", md.DeviceTV},
	{regexp.MustCompile(`fire ?tv`), "Amazon Fire TV", md.DeviceTV},
	{regexp.MustCompile(`androidtv|android tv`), "Android TV", md.DeviceTV},
	{regexp.MustCompile(`chromecast`), "Chromecast", md.DeviceTV},
	{regexp.MustCompile(`apple\s*tv`), "Apple TV", md.DeviceTV},
	{regexp.MustCompile(`playstation`), "PlayStation", md.DeviceTV},
	{regexp.MustCompile(`xbox`), "Xbox", md.DeviceTV},

	{regexp.MustCompile(`iphone`), "iPhone", md.DeviceMobile},
	{regexp.MustCompile(`ipad`), "iPad", md.DeviceMobile},
	{regexp.MustCompile(`android.*mobile`), "Android Phone", md.DeviceMobile},
	{regexp.MustCompile(`android`), "Android Device", md.DeviceMobile},
}

var browserRules = []deviceRule{
	{regexp.MustCompile(`edge`), "Edge", md.DeviceDesktop},
	{regexp.MustCompile(`opera`), "Opera", md.DeviceDesktop},
	{regexp.MustCompile(`chrome`), "Chrome", md.DeviceDesktop},
	{regexp.MustCompile(`firefox`), "Firefox", md.DeviceDesktop},
	{regexp.MustCompile(`safari`), "Safari", md.DeviceDesktop},
}

// ClassifyDevice maps a raw client identifier to a display name and a
// device class.
func ClassifyDevice(ua string) (string, md.DeviceType) {
	l := strings.ToLower(ua)

	for _, r := range deviceRules {
		if r.pattern.MatchString(l) {
			return r.name, r.dtype
		}
	}

	for _, r := range browserRules {
		if r.pattern.MatchString(l) {
			os := "Desktop"
			switch {
			case strings.Contains(l, "windows"):
				os = "Windows"
			case strings.Contains(l, "mac"):
				os = "macOS"
			case strings.Contains(l, "linux"):
				os = "Linux"
			}
			return r.name + " - " + os, md.DeviceDesktop
		}
	}

	return "Unknown device", md.DeviceUnknown
}

// GenerateDevice builds the session-shaped device record for a request.
func GenerateDevice(d *dto.DeviceRequest) md.Session {
	name, dtype := ClassifyDevice(d.UA)
	return md.Session{
		Fingerprint: Fingerprint(d),
		DeviceName:  name,
		DeviceType:  dtype,
		IP:          d.IP,
		UA:          d.UA,
	}
}
