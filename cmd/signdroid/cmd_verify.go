package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signdroid/signdroid/internal/domain-adapters/gateways"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var (
		releaseDir     = fs.String("release-dir", "", "Directory containing signed .apk files (env: ANDROID_RELEASE_DIR)")
		buildTools     = fs.String("build-tools", "", "Build-tools version (env: ANDROID_BUILD_TOOLS_VERSION, default "+gateways.DefaultBuildToolsVersion+")")
		sdkRoot        = fs.String("sdk-root", "", "Android SDK root (env: ANDROID_HOME, required)")
		timeoutMinutes = fs.Int("timeout", 10, "Timeout per tool invocation in minutes")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: signdroid verify [options]

Run apksigner verify on every .apk in the release directory. Every file is
checked even when an earlier one fails; the exit status reflects the run as
a whole. Bundles are skipped, jarsigner verification is not wired up here.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	fallbackToEnv(releaseDir, "ANDROID_RELEASE_DIR")
	fallbackToEnv(buildTools, "ANDROID_BUILD_TOOLS_VERSION")
	fallbackToEnv(sdkRoot, "ANDROID_HOME")

	if *releaseDir == "" {
		fatalf("a release directory is required (--release-dir or ANDROID_RELEASE_DIR)")
	}

	locator := gateways.NewToolLocator(gateways.ToolLocatorConfig{
		SDKRoot:           *sdkRoot,
		BuildToolsVersion: *buildTools,
	})
	tools, err := locator.Resolve()
	if err != nil {
		fatalf("Error: %v", err)
	}

	entries, err := os.ReadDir(*releaseDir)
	if err != nil {
		fatalf("Failed to read %s: %v", *releaseDir, err)
	}

	runner := gateways.NewCommandRunner(time.Duration(*timeoutMinutes) * time.Minute)
	checked, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".apk") {
			continue
		}
		apkPath := filepath.Join(*releaseDir, entry.Name())
		checked++

		if _, err := runner.Run(ctx, tools.ApkSigner, "verify", apkPath); err != nil {
			failed++
			fmt.Printf("  FAILED  %s: %v\n", apkPath, err)
			continue
		}
		fmt.Printf("  ok      %s\n", apkPath)
	}

	if checked == 0 {
		fatalf("no .apk files found in %s", *releaseDir)
	}
	fmt.Printf("%d APKs checked, %d failed\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
