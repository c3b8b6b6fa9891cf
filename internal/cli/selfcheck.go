package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matzehuels/spmaudit/pkg/buildinfo"
	"github.com/matzehuels/spmaudit/pkg/cache"
	"github.com/matzehuels/spmaudit/pkg/integrations/github"
	"github.com/matzehuels/spmaudit/pkg/semver"
)

const selfCheckTimeout = 2 * time.Second

// notifyNewerVersion prints a dim notice when a newer spmaudit release
// exists. Strictly best-effort: any failure, including the short timeout,
// stays silent, and dev builds are never compared.
func notifyNewerVersion(ctx context.Context) {
	if buildinfo.Version == "" || buildinfo.Version == "dev" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, selfCheckTimeout)
	defer cancel()

	client := github.NewClient(github.Config{Cache: cache.NewNullCache()})
	client.SetHTTPClient(&http.Client{Timeout: selfCheckTimeout})

	latest, err := client.LatestVersion(ctx, "matzehuels", "spmaudit")
	if err != nil {
		return
	}
	if semver.IsNewer(latest, buildinfo.Version) {
		fmt.Println(StyleDim.Render(
			fmt.Sprintf("spmaudit %s is available (current: %s)", latest, buildinfo.Version)))
	}
}
