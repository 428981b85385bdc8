package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/signdroid/signdroid/internal/domain-adapters/gateways"
	orchestrators "github.com/signdroid/signdroid/internal/domain-orchestrators"
	"github.com/signdroid/signdroid/internal/domain/entities"
	"github.com/signdroid/signdroid/internal/external-adapters/gpg"
	"github.com/signdroid/signdroid/internal/external-adapters/hclog"
	"github.com/signdroid/signdroid/internal/external-adapters/yaml"
)

func runSign(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	var (
		releaseDir     = fs.String("release-dir", "", "Directory to scan for .apk/.aab artifacts (env: ANDROID_RELEASE_DIR)")
		signingKeyB64  = fs.String("signing-key-base64", "", "Base64-encoded signing keystore (env: SIGNING_KEY_BASE64)")
		keystorePath   = fs.String("keystore", "", "Path to an already-decoded keystore file")
		alias          = fs.String("alias", "", "Keystore key alias (env: SIGNING_KEY_ALIAS)")
		ksPass         = fs.String("ks-pass", "", "Keystore password (env: KEYSTORE_PASSWORD)")
		keyPass        = fs.String("key-pass", "", "Key password, optional (env: KEY_PASSWORD)")
		buildTools     = fs.String("build-tools", "", "Build-tools version (env: ANDROID_BUILD_TOOLS_VERSION, default "+gateways.DefaultBuildToolsVersion+")")
		sdkRoot        = fs.String("sdk-root", "", "Android SDK root (env: ANDROID_HOME, required)")
		recursive      = fs.Bool("recursive", false, "Scan the release directory recursively")
		timeoutMinutes = fs.Int("timeout", 10, "Timeout per tool invocation in minutes")
		profilePath    = fs.String("profile", "", "Optional YAML signing profile for local runs")
		keystoreSig    = fs.String("keystore-sig", "", "Detached OpenPGP signature over the keystore")
		keystorePubkey = fs.String("keystore-pubkey", "", "Armored public key to check the keystore signature against")
		logLevel       = fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: signdroid sign [options]

Sign every .apk and .aab artifact in the release directory. APKs are
alignment-checked, signed with apksigner and verified; bundles are signed in
place with jarsigner. The run fails if any artifact fails, but every artifact
is attempted.

Examples:
  signdroid sign --release-dir app/build/outputs --alias upload --ks-pass "$KS_PASS"
  signdroid sign --profile signing.yml
  SIGNING_KEY_BASE64="$KEY" signdroid sign --release-dir dist --alias release --ks-pass "$KS_PASS"

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	// Profile fills values the flags left unset; flags win, env is last
	if *profilePath != "" {
		profile, err := yaml.NewProfileParser().ParseFile(*profilePath)
		if err != nil {
			fatalf("Failed to load profile: %v", err)
		}
		applyProfile(profile, releaseDir, alias, buildTools, ksPass, keyPass, recursive)
	}
	fallbackToEnv(releaseDir, "ANDROID_RELEASE_DIR")
	fallbackToEnv(signingKeyB64, "SIGNING_KEY_BASE64")
	fallbackToEnv(alias, "SIGNING_KEY_ALIAS")
	fallbackToEnv(ksPass, "KEYSTORE_PASSWORD")
	fallbackToEnv(keyPass, "KEY_PASSWORD")
	fallbackToEnv(buildTools, "ANDROID_BUILD_TOOLS_VERSION")
	fallbackToEnv(sdkRoot, "ANDROID_HOME")

	if *releaseDir == "" {
		fatalf("a release directory is required (--release-dir or ANDROID_RELEASE_DIR)")
	}
	if (*signingKeyB64 == "") == (*keystorePath == "") {
		fatalf("exactly one of --signing-key-base64 and --keystore is required")
	}
	if (*keystoreSig == "") != (*keystorePubkey == "") {
		fatalf("--keystore-sig and --keystore-pubkey must be used together")
	}

	settings := signSettings{
		releaseDir:     *releaseDir,
		signingKeyB64:  *signingKeyB64,
		keystorePath:   *keystorePath,
		alias:          *alias,
		ksPass:         *ksPass,
		keyPass:        *keyPass,
		buildTools:     *buildTools,
		sdkRoot:        *sdkRoot,
		recursive:      *recursive,
		timeout:        time.Duration(*timeoutMinutes) * time.Minute,
		keystoreSig:    *keystoreSig,
		keystorePubkey: *keystorePubkey,
		logLevel:       *logLevel,
	}

	// os.Exit skips defers, so the signing work (and its keystore cleanup)
	// lives in a function that returns an exit code instead
	os.Exit(executeSign(ctx, settings))
}

type signSettings struct {
	releaseDir     string
	signingKeyB64  string
	keystorePath   string
	alias          string
	ksPass         string
	keyPass        string
	buildTools     string
	sdkRoot        string
	recursive      bool
	timeout        time.Duration
	keystoreSig    string
	keystorePubkey string
	logLevel       string
}

func executeSign(ctx context.Context, settings signSettings) int {
	logger := hclog.New("signdroid", settings.logLevel, os.Stderr)

	// Materialize the keystore when it arrived base64-encoded
	keyFilePath := settings.keystorePath
	if settings.signingKeyB64 != "" {
		keystoreDir, err := os.MkdirTemp("", "signdroid-keystore")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create keystore directory: %v\n", err)
			return 1
		}
		defer func() {
			//nolint:errcheck // best-effort cleanup of the key material
			os.RemoveAll(keystoreDir)
		}()

		writer := gateways.NewKeystoreWriter()
		keyFilePath, err = writer.Write(keystoreDir, settings.signingKeyB64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to decode signing key: %v\n", err)
			return 1
		}
	}

	var keystoreVerifier orchestrators.KeystoreVerifier
	if settings.keystoreSig != "" {
		verifier, err := gpg.NewVerifier(settings.keystorePubkey, settings.keystoreSig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load keystore verification key: %v\n", err)
			return 1
		}
		keystoreVerifier = verifier
	}

	runner := gateways.NewCommandRunner(settings.timeout)
	orch := orchestrators.NewSignOrchestrator(
		gateways.NewToolLocator(gateways.ToolLocatorConfig{
			SDKRoot:           settings.sdkRoot,
			BuildToolsVersion: settings.buildTools,
		}),
		gateways.NewArtifactFinder(settings.recursive),
		gateways.NewAPKPipeline(runner, logger),
		gateways.NewAABPipeline(runner, logger),
		logger,
		orchestrators.SignOrchestratorConfig{
			ReleaseDir:       settings.releaseDir,
			KeystoreVerifier: keystoreVerifier,
		},
	)

	result, err := orch.Run(ctx, entities.SigningCredentials{
		KeyFilePath:      keyFilePath,
		Alias:            settings.alias,
		KeyStorePassword: settings.ksPass,
		KeyPassword:      settings.keyPass,
	})
	if result != nil {
		printRunResult(result)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printRunResult(result *orchestrators.SignRunResult) {
	for _, r := range result.Results {
		if r.Succeeded {
			fmt.Printf("  signed  %s -> %s\n", r.InputPath, r.OutputPath)
		} else {
			fmt.Printf("  FAILED  %s: %s\n", r.InputPath, r.ErrorMessage)
		}
	}
	fmt.Printf("%d artifacts, %d failed (%.1fs)\n",
		len(result.Results), result.FailedCount, result.TotalDuration.Seconds())
}

// applyProfile copies profile values into flags that were not set explicitly
func applyProfile(profile *entities.SigningProfile, releaseDir, alias, buildTools, ksPass, keyPass *string, recursive *bool) {
	if *releaseDir == "" {
		*releaseDir = profile.ReleaseDirectory
	}
	if *alias == "" {
		*alias = profile.Alias
	}
	if *buildTools == "" {
		*buildTools = profile.BuildToolsVersion
	}
	if *ksPass == "" && profile.KeyStorePasswordEnv != "" {
		*ksPass = os.Getenv(profile.KeyStorePasswordEnv)
	}
	if *keyPass == "" && profile.KeyPasswordEnv != "" {
		*keyPass = os.Getenv(profile.KeyPasswordEnv)
	}
	if profile.Recursive {
		*recursive = true
	}
}

func fallbackToEnv(value *string, envVar string) {
	if *value == "" {
		*value = os.Getenv(envVar)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
