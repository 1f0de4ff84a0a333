package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/diillson/aws-cost-console/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
     ___        ______     ____          _      ____                      _
    / \ \      / / ___|   / ___|___  ___| |_   / ___|___  _ __  ___  ___ | | ___
   / _ \ \ /\ / /\___ \  | |   / _ \/ __| __| | |   / _ \| '_ \/ __|/ _ \| |/ _ \
  / ___ \ V  V /  ___) | | |__| (_) \__ \ |_  | |__| (_) | | | \__ \ (_) | |  __/
 /_/   \_\_/\_/  |____/   \____\___/|___/\__|  \____\___/|_| |_|___/\___/|_|\___|
`
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, cyan(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("AWS Cost Console (v%s)", version.FormatVersion())))
}

// checkLatestVersion verifica, com um prazo curto, se há uma versão mais recente.
func checkLatestVersion(ctx context.Context, currentVersion string) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	version.CheckLatestVersion(ctx, currentVersion)
}
