package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/fortgo/artifact"
)

// CurrentName is the pointer artifact whose puts go through the
// DynamoDB commit log instead of plain S3. It matches the CURRENT file
// the manifest package maintains.
const CurrentName = "CURRENT"

// ErrConcurrentCommit is returned when another writer committed a
// newer version between read and write.
var ErrConcurrentCommit = errors.New("concurrent commit detected")

// CommitStore implements artifact.Store backed by S3 with DynamoDB
// for atomic CURRENT-pointer commits. This makes concurrent publishers
// safe: S3 alone has no compare-and-swap, so the pointer flip goes
// through a DynamoDB conditional write instead.
//
// Table schema:
//   - Partition key: base_uri (string) - the S3 bucket/prefix
//   - Sort key: version (number) - monotonically increasing version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name fortgo-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	s3Store   *Store
	ddbClient DDBClient
	tableName string
	baseURI   string // partition key, e.g. "s3://bucket/prefix"
}

// NewCommitStore creates a new S3+DynamoDB commit store. baseURI is
// the partition key identifying this artifact tree, conventionally
// "s3://bucket/prefix".
func NewCommitStore(s3Store *Store, ddbClient DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		s3Store:   s3Store,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Put writes an artifact. For CurrentName the content is committed
// through DynamoDB; everything else goes straight to S3.
func (s *CommitStore) Put(ctx context.Context, name string, r io.Reader) error {
	if name != CurrentName {
		return s.s3Store.Put(ctx, name, r)
	}

	// The pointer is a single manifest filename, always tiny.
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return s.commitVersion(ctx, string(data))
}

// Get opens an artifact. For CurrentName the latest committed pointer
// is read from DynamoDB.
func (s *CommitStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	if name != CurrentName {
		return s.s3Store.Get(ctx, name)
	}

	version, manifestPath, err := s.latestVersion(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, artifact.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader([]byte(manifestPath))), nil
}

// Exists reports whether the named artifact is present.
func (s *CommitStore) Exists(ctx context.Context, name string) (bool, error) {
	if name != CurrentName {
		return s.s3Store.Exists(ctx, name)
	}

	version, _, err := s.latestVersion(ctx)
	if err != nil {
		return false, err
	}
	return version > 0, nil
}

// Delete removes an artifact. The commit log itself is append-only;
// deleting CurrentName is rejected.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	if name == CurrentName {
		return errors.New("cannot delete the commit pointer")
	}
	return s.s3Store.Delete(ctx, name)
}

// List lists artifacts under prefix.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.s3Store.List(ctx, prefix)
}

// Version returns the latest committed version number, 0 when nothing
// has been committed yet.
func (s *CommitStore) Version(ctx context.Context) (uint64, error) {
	version, _, err := s.latestVersion(ctx)
	return version, err
}

// latestVersion queries DynamoDB for the newest committed version.
func (s *CommitStore) latestVersion(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":uri": &ddbtypes.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query commit log: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in commit log")
	}
	pathAttr, ok := item["manifest_path"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid manifest_path attribute in commit log")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	return version, pathAttr.Value, nil
}

// commitVersion atomically appends the next version via a DynamoDB
// conditional write.
func (s *CommitStore) commitVersion(ctx context.Context, manifestPath string) error {
	currentVersion, _, err := s.latestVersion(ctx)
	if err != nil {
		return err
	}

	newVersion := currentVersion + 1

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]ddbtypes.AttributeValue{
			"base_uri":      &ddbtypes.AttributeValueMemberS{Value: s.baseURI},
			"version":       &ddbtypes.AttributeValueMemberN{Value: fmt.Sprintf("%d", newVersion)},
			"manifest_path": &ddbtypes.AttributeValueMemberS{Value: manifestPath},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})

	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentCommit
		}
		return fmt.Errorf("failed to commit version: %w", err)
	}

	return nil
}

// putWithChecksum uploads a small object with explicit CRC32C
// validation, bypassing the multipart path.
func putWithChecksum(ctx context.Context, client Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:         aws.String(bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(computeCRC32C(data)),
	})
	return err
}
