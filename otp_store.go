package trustkit

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpRecordVersionV1 = 1

var (
	errOTPChallengeNotFound = errors.New("otp challenge not found")
	errOTPAttemptsExceeded  = errors.New("otp attempts exceeded")
	errOTPRedisUnavailable  = errors.New("otp redis unavailable")
	errOTPRecordMalformed   = errors.New("otp record malformed")
	errOTPUserIDTooLong     = errors.New("otp record user id too long")
)

type otpChallengeRecord struct {
	UserID    string
	ExpiresAt int64
	Attempts  uint16
}

type otpChallengeStore struct {
	redis  *redis.Client
	prefix string
}

func newOTPChallengeStore(redisClient *redis.Client, cfg OTPConfig) *otpChallengeStore {
	return &otpChallengeStore{
		redis:  redisClient,
		prefix: cfg.RedisPrefix,
	}
}

func (s *otpChallengeStore) key(tenantID, challengeID string) string {
	return s.prefix + ":" + normalizeTenantID(tenantID) + ":" + challengeID
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *otpChallengeStore) Save(
	ctx context.Context,
	tenantID, challengeID string,
	record *otpChallengeRecord,
	ttl time.Duration,
) error {
	encoded, err := encodeOTPChallengeRecord(record)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(tenantID, challengeID), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", errOTPRedisUnavailable, err)
	}

	return nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *otpChallengeStore) Get(ctx context.Context, tenantID, challengeID string) (*otpChallengeRecord, error) {
	data, err := s.redis.Get(ctx, s.key(tenantID, challengeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errOTPChallengeNotFound
		}
		return nil, fmt.Errorf("%w: %v", errOTPRedisUnavailable, err)
	}

	record, err := decodeOTPChallengeRecord(data)
	if err != nil {
		return nil, err
	}
	if time.Now().Unix() > record.ExpiresAt {
		return nil, errOTPChallengeNotFound
	}

	return record, nil
}

// Delete removes the challenge and reports whether it was present. The
// returned bool is load-bearing: confirming an already-deleted challenge is
// how replays are detected.
func (s *otpChallengeStore) Delete(ctx context.Context, tenantID, challengeID string) (bool, error) {
	deleted, err := s.redis.Del(ctx, s.key(tenantID, challengeID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", errOTPRedisUnavailable, err)
	}
	return deleted > 0, nil
}

// RecordFailure increments the challenge attempt counter under WATCH so
// concurrent confirmations cannot undercount. When maxAttempts > 0 and the
// budget is exhausted, the challenge is deleted and errOTPAttemptsExceeded
// is returned. maxAttempts <= 0 counts without enforcing.
func (s *otpChallengeStore) RecordFailure(ctx context.Context, tenantID, challengeID string, maxAttempts int) error {
	const maxRetries = 4
	key := s.key(tenantID, challengeID)

	for i := 0; i < maxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}

			record, err := decodeOTPChallengeRecord(data)
			if err != nil {
				return err
			}

			if time.Now().Unix() > record.ExpiresAt {
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				})
				if err != nil {
					return err
				}
				return errOTPChallengeNotFound
			}

			record.Attempts++
			if maxAttempts > 0 && int(record.Attempts) >= maxAttempts {
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				})
				if err != nil {
					return err
				}
				return errOTPAttemptsExceeded
			}

			ttl := time.Until(time.Unix(record.ExpiresAt, 0))
			if ttl <= 0 {
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				})
				if err != nil {
					return err
				}
				return errOTPChallengeNotFound
			}

			updated, err := encodeOTPChallengeRecord(record)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, updated, ttl)
				return nil
			})
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, redis.Nil):
				return errOTPChallengeNotFound
			case errors.Is(err, errOTPChallengeNotFound),
				errors.Is(err, errOTPAttemptsExceeded),
				errors.Is(err, errOTPRecordMalformed):
				return err
			default:
				return fmt.Errorf("%w: %v", errOTPRedisUnavailable, err)
			}
		}

		return nil
	}

	return errOTPChallengeNotFound
}

func encodeOTPChallengeRecord(record *otpChallengeRecord) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(otpRecordVersionV1)

	if err := binary.Write(&buf, binary.BigEndian, record.Attempts); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, record.ExpiresAt); err != nil {
		return nil, err
	}

	if len(record.UserID) > 65535 {
		return nil, errOTPUserIDTooLong
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(record.UserID))); err != nil {
		return nil, err
	}
	buf.WriteString(record.UserID)

	return buf.Bytes(), nil
}

func decodeOTPChallengeRecord(data []byte) (*otpChallengeRecord, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, errOTPRecordMalformed
	}
	if version != otpRecordVersionV1 {
		return nil, errOTPRecordMalformed
	}

	record := &otpChallengeRecord{}

	if err := binary.Read(reader, binary.BigEndian, &record.Attempts); err != nil {
		return nil, errOTPRecordMalformed
	}
	if err := binary.Read(reader, binary.BigEndian, &record.ExpiresAt); err != nil {
		return nil, errOTPRecordMalformed
	}

	var userIDLen uint16
	if err := binary.Read(reader, binary.BigEndian, &userIDLen); err != nil {
		return nil, errOTPRecordMalformed
	}

	userID := make([]byte, userIDLen)
	if _, err := io.ReadFull(reader, userID); err != nil {
		return nil, errOTPRecordMalformed
	}
	record.UserID = string(userID)

	return record, nil
}
