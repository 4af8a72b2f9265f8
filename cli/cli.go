package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"gf-data-miner/catchdata"
	"gf-data-miner/config"
	"gf-data-miner/crypt"
	"gf-data-miner/logging"
	"gf-data-miner/manifest"
	"gf-data-miner/output"
	"gf-data-miner/pipeline"
	"gf-data-miner/resname"
	"gf-data-miner/stc"
	"gf-data-miner/stc/smapping"
	"github.com/alexflint/go-arg"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

type (
	Args struct {
		Config            string                `arg:"--config" help:"path to a YAML config file" placeholder:"FILE"`
		LogLevel          string                `arg:"--log-level" help:"debug, info, warn or error" placeholder:"LEVEL"`
		DecodeTable       *DecodeTableCmd       `arg:"subcommand:decode-table" help:"decode one table file"`
		SplitCatchdata    *SplitCatchdataCmd    `arg:"subcommand:split-catchdata" help:"unwrap catchdata into one file per table"`
		NormalizeManifest *NormalizeManifestCmd `arg:"subcommand:normalize-manifest" help:"sort and strip a manifest, print its fingerprint"`
		DeriveName        *DeriveNameCmd        `arg:"subcommand:derive-name" help:"print the resource names of a version"`
		XOR               *XORCmd               `arg:"subcommand:xor" help:"apply the XOR stream cipher to a file"`
		Mine              *MineCmd              `arg:"subcommand:mine" help:"mine an unpacked resource directory"`
	}
	DecodeTableCmd struct {
		STC     string `arg:"--stc,required" help:"table file" placeholder:"5000.stc"`
		Mapping string `arg:"--mapping,required" help:"schema file" placeholder:"5000.json"`
		Long    bool   `arg:"--long" help:"use the long row format"`
		Out     string `arg:"--out" help:"destination, stdout if empty" placeholder:"FILE"`
	}
	SplitCatchdataCmd struct {
		In  string `arg:"--in,required" help:"catchdata blob" placeholder:"catchdata.dat"`
		Out string `arg:"--out" help:"destination directory, stdout if empty" placeholder:"DIR"`
		Key string `arg:"--key" help:"XOR key, the configured dat key if empty"`
	}
	NormalizeManifestCmd struct {
		In  string `arg:"--in,required" help:"manifest" placeholder:"resdata.json"`
		Out string `arg:"--out" help:"destination, not written if empty" placeholder:"FILE"`
	}
	DeriveNameCmd struct {
		Region        config.Region `arg:"--region,required" help:"ch, tw, kr, us, jp or at"`
		ClientVersion string        `arg:"--client-version,required" placeholder:"30201"`
		ABVersion     string        `arg:"--ab-version,required" placeholder:"312"`
		DataVersion   string        `arg:"--data-version" help:"also print the table archive name"`
	}
	XORCmd struct {
		In  string `arg:"--in,required" placeholder:"FILE"`
		Out string `arg:"--out,required" placeholder:"FILE"`
		Key string `arg:"--key,required"`
	}
	MineCmd struct {
		Raw           string        `arg:"--raw,required" help:"directory of unpacked resources" placeholder:"DIR"`
		Out           string        `arg:"--out,required" help:"data directory" placeholder:"DIR"`
		Region        config.Region `arg:"--region,required" help:"ch, tw, kr, us, jp or at"`
		ClientVersion string        `arg:"--client-version,required" placeholder:"30201"`
		ABVersion     string        `arg:"--ab-version,required" placeholder:"312"`
		DataVersion   string        `arg:"--data-version,required"`
		Force         bool          `arg:"--force" help:"mine even if the build was mined already"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Mine the game's data tables out of its client resources.\n",
			"Every step of the mining run is exposed as its own command so that a",
			"single table, catchdata blob or manifest can be inspected by hand.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// Run executes the subcommand in args. Results go to stdout; logs go to
// stderr.
func Run(ctx context.Context, args Args, stdout io.Writer) error {
	cfg, err := config.Load(args.Config)
	if err != nil {
		return err
	}
	if args.LogLevel != "" {
		cfg.LogLevel = args.LogLevel
	}
	logger, closeLogger, err := logging.Setup(logging.Options{Level: cfg.LogLevel, SeqURL: cfg.SeqURL})
	if err != nil {
		return err
	}
	defer closeLogger()

	switch {
	case args.DecodeTable != nil:
		return runDecodeTable(*args.DecodeTable, logger, stdout)
	case args.SplitCatchdata != nil:
		return runSplitCatchdata(*args.SplitCatchdata, cfg, stdout)
	case args.NormalizeManifest != nil:
		return runNormalizeManifest(*args.NormalizeManifest, stdout)
	case args.DeriveName != nil:
		return runDeriveName(*args.DeriveName, cfg, stdout)
	case args.XOR != nil:
		return runXOR(*args.XOR)
	case args.Mine != nil:
		return runMine(ctx, *args.Mine, cfg, logger, stdout)
	}
	return errors.New("no command given")
}

func runDecodeTable(cmd DecodeTableCmd, logger *slog.Logger, stdout io.Writer) error {
	schemaBytes, err := os.ReadFile(cmd.Mapping)
	if err != nil {
		return errors.Wrap(err, "decode-table error reading schema")
	}
	schema, err := smapping.Parse(schemaBytes)
	if err != nil {
		return err
	}
	bs, err := os.ReadFile(cmd.STC)
	if err != nil {
		return errors.Wrap(err, "decode-table error reading table")
	}
	table, err := stc.DecodeTable(bs, *schema, cmd.Long)
	if err != nil {
		return err
	}
	if table.Drift != nil {
		logger.Warn("schema drift", "table", table.Name, "drift", table.Drift.String())
	}
	return emit(cmd.Out, table.Records, stdout)
}

func runSplitCatchdata(cmd SplitCatchdataCmd, cfg config.Config, stdout io.Writer) error {
	key := cmd.Key
	if key == "" {
		key = cfg.Keys.DatKey
	}
	cipher, err := os.ReadFile(cmd.In)
	if err != nil {
		return errors.Wrap(err, "split-catchdata error")
	}
	tables, err := catchdata.Decode(cipher, key)
	if err != nil {
		return err
	}
	if cmd.Out == "" {
		return emit("", tables, stdout)
	}
	return tables.Range(func(name string, records []orderedmap.OrderedMap) error {
		return output.WriteJSON(filepath.Join(cmd.Out, name+pipeline.RecordsExtension), records, output.TableIndent)
	})
}

func runNormalizeManifest(cmd NormalizeManifestCmd, stdout io.Writer) error {
	bs, err := os.ReadFile(cmd.In)
	if err != nil {
		return errors.Wrap(err, "normalize-manifest error")
	}
	m, err := manifest.Parse(bs)
	if err != nil {
		return err
	}
	fingerprint, err := manifest.Fingerprint(m)
	if err != nil {
		return err
	}
	if cmd.Out != "" {
		normalized, err := manifest.Marshal(m)
		if err != nil {
			return err
		}
		if err := output.WriteFile(cmd.Out, normalized); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(stdout, fingerprint)
	return err
}

func runDeriveName(cmd DeriveNameCmd, cfg config.Config, stdout io.Writer) error {
	vc, err := cfg.VersionContext(cmd.Region, cmd.ClientVersion, cmd.ABVersion, cmd.DataVersion)
	if err != nil {
		return err
	}
	name, err := resname.ManifestName(vc, cfg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, name); err != nil {
		return err
	}
	if cmd.DataVersion == "" {
		return nil
	}
	_, err = fmt.Fprintln(stdout, resname.ArchiveName(cmd.DataVersion))
	return err
}

func runXOR(cmd XORCmd) error {
	bs, err := os.ReadFile(cmd.In)
	if err != nil {
		return errors.Wrap(err, "xor error")
	}
	plain, err := crypt.XORChecked(bs, cmd.Key)
	if err != nil {
		return err
	}
	return output.WriteFile(cmd.Out, plain)
}

func runMine(ctx context.Context, cmd MineCmd, cfg config.Config, logger *slog.Logger, stdout io.Writer) error {
	if !CheckExistence(cmd.Raw) {
		return errors.Errorf("mine error: %s does not exist", cmd.Raw)
	}
	vc, err := cfg.VersionContext(cmd.Region, cmd.ClientVersion, cmd.ABVersion, cmd.DataVersion)
	if err != nil {
		return err
	}
	miner := pipeline.NewMiner(cfg, vc, logger)
	report, err := miner.Run(ctx, pipeline.Layout{Raw: cmd.Raw, Out: cmd.Out}, cmd.Force)
	if err != nil {
		return err
	}
	return emit("", report, stdout)
}

func emit(path string, v any, stdout io.Writer) error {
	if path != "" {
		return output.WriteJSON(path, v, output.TableIndent)
	}
	bs, err := output.MarshalJSON(v, output.TableIndent)
	if err != nil {
		return err
	}
	_, err = stdout.Write(bs)
	return err
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)
	if parser.Subcommand() == nil {
		parser.Fail("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := Run(ctx, args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		stop()
		os.Exit(1)
	}
}
