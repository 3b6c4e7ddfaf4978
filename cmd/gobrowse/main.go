// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/navwar/gobrowse/pkg/filetype"
	"github.com/navwar/gobrowse/pkg/fs"
	"github.com/navwar/gobrowse/pkg/handle"
	"github.com/navwar/gobrowse/pkg/lfs"
	"github.com/navwar/gobrowse/pkg/log"
	"github.com/navwar/gobrowse/pkg/s3fs"
	"github.com/navwar/gobrowse/pkg/ts"
)

const (
	GoBrowseVersion = "0.0.1"
)

// AWS Flags
const (
	// Profile
	flagAWSPartition     = "aws-partition"
	flagAWSProfile       = "aws-profile"
	flagAWSDefaultRegion = "aws-default-region"
	flagAWSRegion        = "aws-region"
	// Credentials
	flagAWSAccessKeyID     = "aws-access-key-id"
	flagAWSSecretAccessKey = "aws-secret-access-key"
	flagAWSSessionToken    = "aws-session-token"
	// Client
	flagAWSRetryMaxAttempts = "aws-retry-max-attempts"
	// TLS
	flagAWSInsecureSkipVerify = "aws-insecure-skip-verify"
	// Miscellaneous
	flagAWSS3Endpoint      = "aws-s3-endpoint"
	flagAWSS3UsePathStyle  = "aws-s3-use-path-style"
	flagAWSS3PresignExpiry = "aws-s3-presign-expiry"
)

// Browse Flags
const (
	flagDirectory = "directory"
	flagBaseURL   = "base-url"
)

// Debug Flag
const (
	flagDebug = "debug"
)

// List Flags
const (
	flagAll                   = "all"
	flagFormat                = "format"
	flagTimeLayout            = "time-layout"
	flagTimeZone              = "time-zone"
	flagHumanReadableFileSize = "human-readable-file-size"
	flagMaxPages              = "max-pages"
	flagMaxDirectoryEntries   = "max-directory-entries"
)

// List Defaults
const (
	DefaultFormat = "text"
)

// Log Flags
const (
	flagLogPath            = "log-path"
	flagLogPerm            = "log-perm"
	flagLogClientSigning   = "log-client-signing"
	flagLogClientRequests  = "log-client-requests"
	flagLogClientResponses = "log-client-responses"
	flagLogClientRetries   = "log-client-retries"
)

// initAWSFlags initializes the AWS flags.
func initAWSFlags(flag *pflag.FlagSet) {
	// Profile
	flag.String(flagAWSPartition, "aws", "AWS Partition")
	flag.String(flagAWSProfile, "default", "AWS Profile")
	flag.String(flagAWSDefaultRegion, "", "AWS Default Region")
	flag.String(flagAWSRegion, "", "AWS Region (overrides default region)")
	// Credentials
	flag.String(flagAWSAccessKeyID, "", "AWS Access Key ID")
	flag.String(flagAWSSecretAccessKey, "", "AWS Secret Access Key")
	flag.String(flagAWSSessionToken, "", "AWS Session Token")
	// Client
	flag.Int(flagAWSRetryMaxAttempts, 5, "the maximum number attempts an AWS API client will call an operation that fails with a retryable error.")
	// TLS
	flag.Bool(flagAWSInsecureSkipVerify, false, "Skip verification of AWS TLS certificate")
	// Miscellaneous
	flag.String(flagAWSS3Endpoint, "", "AWS S3 Endpoint URL")
	flag.Bool(flagAWSS3UsePathStyle, false, "Use path-style addressing (default is to use virtual-host-style addressing)")
	flag.Duration(flagAWSS3PresignExpiry, s3fs.DefaultPresignExpiry, "expiry duration for presigned URLs")
}

func initBrowseFlags(flag *pflag.FlagSet) {
	flag.String(flagDirectory, "", "base directory stripped from paths when computing relative path attributes")
	flag.String(flagBaseURL, "", "base URL used to resolve URLs for local files")
}

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages")
}

func initListFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagAll, "a", false, "Include directory entries whose names begin with a dot (‘.’).")
	flag.StringP(flagFormat, "f", DefaultFormat, "output format.  Either jsonl or text.")
	flag.StringP(flagTimeLayout, "t", "Default", "the layout to use for file timestamps.  Use go layout format, or the name of a layout.  Use gobrowse layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for file timestamps")
	flag.Bool(flagHumanReadableFileSize, false, "display file sizes in human-readable format")
	flag.Int(flagMaxDirectoryEntries, -1, "maximum directory entries for each page returned by the filesystem")
	flag.Int(flagMaxPages, -1, "maximum number of pages to return from the filesystem when reading a directory")
}

func initLogFlags(flag *pflag.FlagSet) {
	flag.String(flagLogPath, "-", "path to the log output.  Defaults to the operating system's stdout device.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
	flag.Bool(flagLogClientSigning, false, "log AWS client signature requests")
	flag.Bool(flagLogClientRequests, false, "log AWS client requests")
	flag.Bool(flagLogClientResponses, false, "log AWS client responses")
	flag.Bool(flagLogClientRetries, false, "log AWS client retries")
}

func initBrowseCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initAWSFlags(flag)
	initBrowseFlags(flag)
	initListFlags(flag)
	initLogFlags(flag)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	return v, nil
}

func checkLogConfig(v *viper.Viper, args []string) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return fmt.Errorf("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	return nil
}

func checkBrowseConfig(v *viper.Viper, args []string, expected int) error {
	if len(args) != expected {
		return fmt.Errorf("expecting %d positional arguments, but found %d arguments", expected, len(args))
	}
	if presignExpiry := v.GetDuration(flagAWSS3PresignExpiry); presignExpiry <= 0 {
		return fmt.Errorf("%q value %q is invalid, expecting a positive duration", flagAWSS3PresignExpiry, presignExpiry)
	}
	if err := checkLogConfig(v, args); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

type InitS3ClientInput struct {
	Profile   string
	Partition string
	Region    string
	// AWS Client
	Endpoint           string
	InsecureSkipVerify bool
	RetryMaxAttempts   int
	UsePathStyle       bool
	// AWS Credentials
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Client Log Mode
	LogClientSigning   bool
	LogClientRetries   bool
	LogClientRequests  bool
	LogClientResponses bool
}

func InitS3Client(ctx context.Context, input *InitS3ClientInput) *s3.Client {
	clientLogMode := aws.ClientLogMode(0)
	if input.LogClientSigning {
		clientLogMode |= aws.LogSigning
	}
	if input.LogClientRetries {
		clientLogMode |= aws.LogRetries
	}
	if input.LogClientRequests {
		clientLogMode |= aws.LogRequest
	}
	if input.LogClientResponses {
		clientLogMode |= aws.LogResponse
	}

	c := aws.Config{
		ClientLogMode:    clientLogMode,
		RetryMaxAttempts: input.RetryMaxAttempts,
		Region:           input.Region,
		Logger:           log.NewClientLogger(os.Stdout),
	}

	if len(input.AccessKeyID) > 0 && len(input.SecretAccessKey) > 0 {
		c.Credentials = credentials.NewStaticCredentialsProvider(
			input.AccessKeyID,
			input.SecretAccessKey,
			input.SessionToken)
	} else {
		sharedConfig, err := config.LoadSharedConfigProfile(ctx, input.Profile)
		if err == nil {
			c.Credentials = credentials.NewStaticCredentialsProvider(
				sharedConfig.Credentials.AccessKeyID,
				sharedConfig.Credentials.SecretAccessKey,
				"")
		}
	}

	if input.InsecureSkipVerify {
		c.HTTPClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			},
		}
	}

	client := s3.NewFromConfig(c, func(o *s3.Options) {
		o.UsePathStyle = input.UsePathStyle
		if len(input.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(input.Endpoint)
		}
	})

	return client
}

type InitFileSystemInput struct {
	Root                string
	Directory           string
	BaseURL             string
	Profile             string
	Partition           string
	DefaultRegion       string
	MaxDirectoryEntries int
	MaxPages            int
	PresignExpiry       time.Duration
	// AWS Client
	Endpoint           string
	InsecureSkipVerify bool
	RetryMaxAttempts   int
	UsePathStyle       bool
	// AWS Credentials
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Client Log Mode
	LogClientSigning   bool
	LogClientRetries   bool
	LogClientRequests  bool
	LogClientResponses bool
}

func InitFileSystem(ctx context.Context, input *InitFileSystemInput) (fs.FileSystem, error) {

	if strings.HasPrefix(input.Root, "file://") {
		return lfs.NewLocalFileSystem(input.Root[len("file://"):], input.BaseURL), nil
	}

	if strings.HasPrefix(input.Root, "s3://") {
		rootParts := s3fs.Split(input.Root[len("s3://"):])
		if len(rootParts) == 0 || rootParts[0] == "/" {
			return nil, fmt.Errorf("expecting s3 root of the form s3://BUCKET[/PREFIX], found %q", input.Root)
		}
		bucketName := rootParts[0]
		prefix := strings.Join(rootParts[1:], "/")

		clients := map[string]*s3.Client{}
		bucketRegions := map[string]string{}

		clients[input.DefaultRegion] = InitS3Client(ctx, &InitS3ClientInput{
			Profile:   input.Profile,
			Partition: input.Partition,
			Region:    input.DefaultRegion,
			// AWS Client
			Endpoint:           input.Endpoint,
			InsecureSkipVerify: input.InsecureSkipVerify,
			RetryMaxAttempts:   input.RetryMaxAttempts,
			UsePathStyle:       input.UsePathStyle,
			// AWS Credentials
			AccessKeyID:     input.AccessKeyID,
			SecretAccessKey: input.SecretAccessKey,
			SessionToken:    input.SessionToken,
			// Client Mode
			LogClientSigning:   input.LogClientSigning,
			LogClientRetries:   input.LogClientRetries,
			LogClientRequests:  input.LogClientRequests,
			LogClientResponses: input.LogClientResponses,
		})

		getBucketLocationOutput, err := clients[input.DefaultRegion].GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: aws.String(bucketName),
		})
		if err == nil {
			if locationConstraint := string(getBucketLocationOutput.LocationConstraint); len(locationConstraint) > 0 {
				bucketRegions[bucketName] = locationConstraint
			} else {
				bucketRegions[bucketName] = "us-east-1"
			}
		}

		if bucketRegion, ok := bucketRegions[bucketName]; ok && bucketRegion != input.DefaultRegion {
			clients[bucketRegion] = InitS3Client(ctx, &InitS3ClientInput{
				Profile:   input.Profile,
				Partition: input.Partition,
				Region:    bucketRegion,
				// AWS Client
				Endpoint:           input.Endpoint,
				InsecureSkipVerify: input.InsecureSkipVerify,
				RetryMaxAttempts:   input.RetryMaxAttempts,
				UsePathStyle:       input.UsePathStyle,
				// AWS Credentials
				AccessKeyID:     input.AccessKeyID,
				SecretAccessKey: input.SecretAccessKey,
				SessionToken:    input.SessionToken,
				// Client Mode
				LogClientSigning:   input.LogClientSigning,
				LogClientRetries:   input.LogClientRetries,
				LogClientRequests:  input.LogClientRequests,
				LogClientResponses: input.LogClientResponses,
			})
		}

		return s3fs.NewS3FileSystem(
			input.DefaultRegion,
			bucketName,
			prefix,
			clients,
			bucketRegions,
			input.MaxDirectoryEntries,
			input.MaxPages,
			input.PresignExpiry), nil
	}

	return lfs.NewLocalFileSystem(input.Root, input.BaseURL), nil
}

func initFileSystemFromViper(ctx context.Context, v *viper.Viper, root string) (fs.FileSystem, error) {

	profile := v.GetString(flagAWSProfile)
	if len(profile) == 0 {
		profile = "default"
	}

	partition := v.GetString(flagAWSPartition)
	if len(partition) == 0 {
		partition = "aws"
	}

	region := v.GetString(flagAWSRegion)
	if len(region) == 0 {
		if defaultRegion := v.GetString(flagAWSDefaultRegion); len(defaultRegion) > 0 {
			region = defaultRegion
		}
	}

	// if neither region nor default region is specified
	if len(region) == 0 {
		sharedConfig, loadSharedConfigProfileError := config.LoadSharedConfigProfile(ctx, profile)
		if loadSharedConfigProfileError == nil {
			region = sharedConfig.Region
		}
	}

	return InitFileSystem(ctx, &InitFileSystemInput{
		Root:                root,
		Directory:           v.GetString(flagDirectory),
		BaseURL:             v.GetString(flagBaseURL),
		Profile:             profile,
		Partition:           partition,
		DefaultRegion:       region,
		MaxDirectoryEntries: v.GetInt(flagMaxDirectoryEntries),
		MaxPages:            v.GetInt(flagMaxPages),
		PresignExpiry:       v.GetDuration(flagAWSS3PresignExpiry),
		// AWS Client
		Endpoint:           v.GetString(flagAWSS3Endpoint),
		InsecureSkipVerify: v.GetBool(flagAWSInsecureSkipVerify),
		UsePathStyle:       v.GetBool(flagAWSS3UsePathStyle),
		RetryMaxAttempts:   v.GetInt(flagAWSRetryMaxAttempts),
		// AWS Credentials
		AccessKeyID:     v.GetString(flagAWSAccessKeyID),
		SecretAccessKey: v.GetString(flagAWSSecretAccessKey),
		SessionToken:    v.GetString(flagAWSSessionToken),
		// Client Mode
		LogClientSigning:   v.GetBool(flagLogClientSigning),
		LogClientRetries:   v.GetBool(flagLogClientRetries),
		LogClientRequests:  v.GetBool(flagLogClientRequests),
		LogClientResponses: v.GetBool(flagLogClientResponses),
	})
}

func initLogger(path string, perm string) (*log.SimpleLogger, error) {

	if path == os.DevNull {
		return log.NewSimpleLogger(io.Discard), nil
	}

	if path == "-" {
		return log.NewSimpleLogger(os.Stdout), nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(f), nil
}

func formatHumanReadableFileSize(size int64) string {
	str := ""
	if size <= int64(math.Pow(2, 10)) {
		str = fmt.Sprintf("%dB", size)
	} else if size <= int64(math.Pow(2, 20)) {
		f := float64(size) / math.Pow(2, 10)
		if f > 10 {
			str = fmt.Sprintf("%.0fK", f)
		} else {
			str = fmt.Sprintf("%.1fK", f)
		}
	} else if size <= int64(math.Pow(2, 30)) {
		str = fmt.Sprintf("%.0fM", float64(size)/math.Pow(2, 20))
	} else {
		str = fmt.Sprintf("%.0fG", float64(size)/math.Pow(2, 30))
	}
	return fmt.Sprintf("%5s", str)
}

// browseField satisfies the field-file contract for command line deletes,
// standing in for the record field a web application would supply.
type browseField struct {
	attributeName string
	storage       fs.FileSystem
	directory     string
}

func (f *browseField) AttributeName() string {
	return f.attributeName
}

func (f *browseField) Storage() fs.FileSystem {
	return f.storage
}

func (f *browseField) Directory() string {
	return f.directory
}

// listEntries converts the entries of one directory listing into handles
// pre-seeded with the metadata the listing already returned, so rendering
// the listing performs no further backend calls per entry.
func listEntries(name string, fileSystem fs.FileSystem, directory string, dirs []fs.DirectoryEntryInterface, files []fs.DirectoryEntryInterface) []*handle.FileObject {
	exists := true
	handles := make([]*handle.FileObject, 0, len(dirs)+len(files))
	for _, de := range dirs {
		isDir := true
		modTime := de.ModTime()
		handles = append(handles, handle.NewFileObject(&handle.NewFileObjectInput{
			Path:         fileSystem.Join(name, de.Name()),
			FileSystem:   fileSystem,
			Directory:    directory,
			Exists:       &exists,
			IsDir:        &isDir,
			LastModified: &modTime,
		}))
	}
	for _, de := range files {
		isDir := false
		size := de.Size()
		modTime := de.ModTime()
		handles = append(handles, handle.NewFileObject(&handle.NewFileObjectInput{
			Path:         fileSystem.Join(name, de.Name()),
			FileSystem:   fileSystem,
			Directory:    directory,
			Exists:       &exists,
			IsDir:        &isDir,
			Size:         &size,
			LastModified: &modTime,
		}))
	}
	return handles
}

func statAttributes(ctx context.Context, fo *handle.FileObject) (map[string]interface{}, error) {
	m := map[string]interface{}{
		"path":                    fo.Path(),
		"head":                    fo.Head,
		"filename":                fo.Filename,
		"filename_lower":          fo.FilenameLower,
		"filename_root":           fo.FilenameRoot,
		"extension":               fo.Extension,
		"mimetype":                fo.Mimetype,
		"directory":               fo.Directory(),
		"folder":                  fo.Folder(),
		"path_relative_directory": fo.PathRelativeDirectory(),
	}

	exists, err := fo.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving existence of %q: %w", fo.Path(), err)
	}
	m["exists"] = exists

	fileType, err := fo.FileType(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving file type of %q: %w", fo.Path(), err)
	}
	m["filetype"] = fileType

	isFolder, err := fo.IsFolder(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving folder status of %q: %w", fo.Path(), err)
	}
	m["is_folder"] = isFolder

	if isFolder {
		isEmpty, err := fo.IsEmpty(ctx)
		if err != nil {
			return nil, fmt.Errorf("error resolving emptiness of %q: %w", fo.Path(), err)
		}
		m["is_empty"] = isEmpty
	}

	size, err := fo.FileSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving size of %q: %w", fo.Path(), err)
	}
	if size != nil {
		m["filesize"] = *size
	} else {
		m["filesize"] = nil
	}

	date, err := fo.Date(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving modification time of %q: %w", fo.Path(), err)
	}
	if date != nil {
		m["date"] = *date
	} else {
		m["date"] = nil
	}

	dateTime, err := fo.DateTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("error resolving modification time of %q: %w", fo.Path(), err)
	}
	if dateTime != nil {
		m["datetime"] = dateTime.Format(time.RFC3339)
	} else {
		m["datetime"] = nil
	}

	if exists && !isFolder {
		url, err := fo.URL(ctx)
		if err != nil {
			return nil, fmt.Errorf("error resolving URL of %q: %w", fo.Path(), err)
		}
		m["url"] = url
	}

	return m, nil
}

func main() {
	rootCommand := &cobra.Command{
		Use:                   `gobrowse [flags]`,
		DisableFlagsInUseLine: true,
		Short: strings.Join([]string{
			"gobrowse is a simple command line program for browsing file metadata at a directory specified by URI.",
			"gobrowse schemes returns the currently supported schemes.",
			"Local files are specified using the \"file://\" scheme or a path without a scheme.",
			"S3 files are specified using the \"s3://\" scheme.",
		}, "\n"),
	}

	layoutsCommand := &cobra.Command{
		Use:                   `layouts`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(ts.NamedLayouts))
			for name := range ts.NamedLayouts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	listCommand := &cobra.Command{
		Use:                   "list URI",
		DisableFlagsInUseLine: true,
		Short:                 "list",
		Long:                  "list the directory at the URI as file handles",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkBrowseConfig(v, args, 1); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			uri := args[0]

			fileSystem, err := initFileSystemFromViper(ctx, v, uri)
			if err != nil {
				return fmt.Errorf("error initializing filesystem for %q: %w", uri, err)
			}

			directories, files, err := fileSystem.ListDir(ctx, "/")
			if err != nil {
				_ = logger.Log("Error listing", map[string]interface{}{
					"uri": uri,
					"err": err.Error(),
				})
				os.Exit(1)
			}

			handles := listEntries("/", fileSystem, v.GetString(flagDirectory), directories, files)

			all := v.GetBool(flagAll)
			format := v.GetString(flagFormat)
			humanReadableFileSize := v.GetBool(flagHumanReadableFileSize)
			timeLayout := ts.ParseLayout(v.GetString(flagTimeLayout))
			timeZone, err := ts.ParseLocation(v.GetString(flagTimeZone))
			if err != nil {
				return fmt.Errorf("error parsing time zone location %q: %w", v.GetString(flagTimeZone), err)
			}

			switch format {
			case "text":
				_, _ = fmt.Fprintf(os.Stdout, "%-8s %8s %s %s\n",
					"type",
					"size",
					fmt.Sprintf("%"+strconv.Itoa(timeLayout.Width())+"s", "modified"),
					"name",
				)
				for _, fo := range handles {
					if !all && strings.HasPrefix(fo.Filename, ".") {
						continue
					}
					fileType, fileTypeError := fo.FileType(ctx)
					if fileTypeError != nil {
						return fmt.Errorf("error classifying %q: %w", fo.Path(), fileTypeError)
					}
					sizeColumn := ""
					if size, _ := fo.FileSize(ctx); size != nil {
						if humanReadableFileSize {
							sizeColumn = strings.TrimSpace(formatHumanReadableFileSize(*size))
						} else {
							sizeColumn = strconv.FormatInt(*size, 10)
						}
					}
					modifiedColumn := strings.Repeat(" ", timeLayout.Width())
					if dateTime, _ := fo.DateTime(ctx); dateTime != nil {
						modifiedColumn = timeLayout.Format(dateTime.In(timeZone))
					}
					_, _ = fmt.Fprintf(os.Stdout, "%-8s %8s %s %s\n",
						fileType,
						sizeColumn,
						modifiedColumn,
						fo.Filename)
				}
			case "jsonl":
				encoder := json.NewEncoder(os.Stdout)
				for _, fo := range handles {
					if !all && strings.HasPrefix(fo.Filename, ".") {
						continue
					}
					fileType, fileTypeError := fo.FileType(ctx)
					if fileTypeError != nil {
						return fmt.Errorf("error classifying %q: %w", fo.Path(), fileTypeError)
					}
					m := map[string]interface{}{
						"name":     fo.Filename,
						"path":     fo.Path(),
						"filetype": fileType,
						"mimetype": fo.Mimetype,
					}
					if size, _ := fo.FileSize(ctx); size != nil {
						if humanReadableFileSize {
							m["size"] = strings.TrimSpace(formatHumanReadableFileSize(*size))
						} else {
							m["size"] = *size
						}
					}
					if date, _ := fo.Date(ctx); date != nil {
						m["mod_time"] = timeLayout.FormatUnix(*date, timeZone)
					}
					encodeError := encoder.Encode(m)
					if encodeError != nil {
						return fmt.Errorf("error encoding handle %q: %w", fo.Path(), encodeError)
					}
				}
			default:
				_ = logger.Log("Unknown format", map[string]interface{}{
					"format": format,
				})
				os.Exit(1)
			}

			return nil
		},
	}
	initBrowseCommandFlags(listCommand.Flags())

	statCommand := &cobra.Command{
		Use:                   "stat URI PATH",
		DisableFlagsInUseLine: true,
		Short:                 "stat",
		Long:                  "resolve and print every metadata attribute for the path within the URI",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkBrowseConfig(v, args, 2); errConfig != nil {
				return errConfig
			}

			fileSystem, err := initFileSystemFromViper(ctx, v, args[0])
			if err != nil {
				return fmt.Errorf("error initializing filesystem for %q: %w", args[0], err)
			}

			fo := handle.NewFileObject(&handle.NewFileObjectInput{
				Path:       args[1],
				FileSystem: fileSystem,
				Directory:  v.GetString(flagDirectory),
			})

			m, err := statAttributes(ctx, fo)
			if err != nil {
				return err
			}

			switch format := v.GetString(flagFormat); format {
			case "text":
				keys := make([]string, 0, len(m))
				for k := range m {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					_, _ = fmt.Fprintf(os.Stdout, "%s: %v\n", k, m[k])
				}
			case "jsonl":
				encoder := json.NewEncoder(os.Stdout)
				if encodeError := encoder.Encode(m); encodeError != nil {
					return fmt.Errorf("error encoding attributes for %q: %w", fo.Path(), encodeError)
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			return nil
		},
	}
	initBrowseCommandFlags(statCommand.Flags())

	urlCommand := &cobra.Command{
		Use:                   "url URI PATH",
		DisableFlagsInUseLine: true,
		Short:                 "url",
		Long:                  "resolve the access URL for the path within the URI",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkBrowseConfig(v, args, 2); errConfig != nil {
				return errConfig
			}

			fileSystem, err := initFileSystemFromViper(ctx, v, args[0])
			if err != nil {
				return fmt.Errorf("error initializing filesystem for %q: %w", args[0], err)
			}

			fo := handle.NewFileObject(&handle.NewFileObjectInput{
				Path:       args[1],
				FileSystem: fileSystem,
				Directory:  v.GetString(flagDirectory),
			})

			url, err := fo.URL(ctx)
			if err != nil {
				return fmt.Errorf("error resolving URL for %q: %w", fo.Path(), err)
			}

			fmt.Println(url)

			return nil
		},
	}
	initBrowseCommandFlags(urlCommand.Flags())

	rmCommand := &cobra.Command{
		Use:                   "rm URI PATH",
		DisableFlagsInUseLine: true,
		Short:                 "rm",
		Long:                  "delete the path within the URI, recursively if it is a folder",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			ctx := cmd.Context()

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkBrowseConfig(v, args, 2); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			fileSystem, err := initFileSystemFromViper(ctx, v, args[0])
			if err != nil {
				return fmt.Errorf("error initializing filesystem for %q: %w", args[0], err)
			}

			ffo := handle.NewFieldFileObject(nil, &browseField{
				attributeName: "file",
				storage:       fileSystem,
				directory:     v.GetString(flagDirectory),
			}, args[1])

			if err := ffo.Delete(ctx); err != nil {
				_ = logger.Log("Error deleting", map[string]interface{}{
					"uri":  args[0],
					"path": args[1],
					"err":  err.Error(),
				})
				os.Exit(1)
			}

			_ = logger.Log("Deleted", map[string]interface{}{
				"uri":  args[0],
				"path": args[1],
			})

			return nil
		},
	}
	initBrowseCommandFlags(rmCommand.Flags())

	typesCommand := &cobra.Command{
		Use:                   `types`,
		DisableFlagsInUseLine: true,
		Short:                 "show file type classifications",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, fileType := range []string{
				filetype.Folder,
				filetype.Image,
				filetype.Document,
				filetype.Audio,
				filetype.Video,
				filetype.Archive,
				filetype.Code,
				filetype.Unknown,
			} {
				fmt.Println(fileType)
			}
			return nil
		},
	}

	schemesCommand := &cobra.Command{
		Use:                   `schemes`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported schemes",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("file")
			fmt.Println("s3")
			return nil
		},
	}

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(GoBrowseVersion)
			return nil
		},
	}

	rootCommand.AddCommand(layoutsCommand, listCommand, statCommand, urlCommand, rmCommand, typesCommand, schemesCommand, versionCommand)

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gobrowse: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gobrowse --help\" for more information.")
		os.Exit(1)
	}
}
