package version

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pterm/pterm"
)

// Valores padrão, sobrescritos por ldflags:
//
//	go build -ldflags "-X github.com/diillson/aws-cost-console/pkg/version.Version=1.2.3"
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		applyBuildSettings(bi.Settings)
	}
}

// applyBuildSettings preenche os campos vazios a partir das configurações vcs.* gravadas
// pelo go build. Valores vindos de ldflags têm prioridade.
func applyBuildSettings(settings []debug.BuildSetting) {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := vcs["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	if tag := vcs["vcs.tag"]; tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(vcs["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// releasesURL aponta para a última release publicada no GitHub.
var releasesURL = "https://api.github.com/repos/diillson/aws-cost-console/releases/latest"

// LatestVersion consulta a última release publicada. Retorna "" quando não é possível saber.
func LatestVersion(ctx context.Context) string {
	var release struct {
		TagName string `json:"tag_name"`
	}
	resp, err := resty.New().
		SetTimeout(3 * time.Second).
		R().
		SetContext(ctx).
		SetResult(&release).
		Get(releasesURL)
	if err != nil || resp.StatusCode() != http.StatusOK {
		return ""
	}
	return strings.TrimPrefix(release.TagName, "v")
}

// CheckLatestVersion avisa quando existe uma versão mais recente que currentVersion.
func CheckLatestVersion(ctx context.Context, currentVersion string) {
	// Versões dev não são verificadas
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	latest := LatestVersion(ctx)
	if latest == "" || !IsNewer(latest, currentVersion) {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of AWS Cost Console is available: %s", latest))
	pterm.Info.Println("Please update using: go install github.com/diillson/aws-cost-console/cmd/aws-cost-console@latest")
}

// IsNewer compara versões "major.minor.patch" numericamente. Sufixos como "-dirty" são ignorados.
func IsNewer(candidate, current string) bool {
	a, b := versionParts(candidate), versionParts(current)
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func versionParts(v string) [3]int {
	var parts [3]int
	v, _, _ = strings.Cut(strings.TrimPrefix(v, "v"), "-")
	for i, p := range strings.SplitN(v, ".", 3) {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		parts[i] = n
	}
	return parts
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
// Fallbacks: quando não há ldflags, usamos os valores populados via build info.
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	commit := Commit
	if commit == "" {
		commit = "development"
	}

	// Quando commit é "development", exibimos "(development)" para clareza
	if commit == "development" && BuildTime == "" {
		return fmt.Sprintf("%s (development)", ver)
	}

	if BuildTime != "" {
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, BuildTime)
	}

	return fmt.Sprintf("%s (commit: %s)", ver, commit)
}
