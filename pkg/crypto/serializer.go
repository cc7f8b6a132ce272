package crypto

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm/schema"
)

// SerializerName is the value used in `gorm:"serializer:encrypted"` tags.
const SerializerName = "encrypted"

// Serializer encrypts string and *string columns on write and decrypts on read.
// Values that fail to decrypt are returned as stored so rows written before
// encryption was enabled stay readable.
type Serializer struct {
	Cipher *Cipher
}

// Register installs the serializer globally. It must run before gorm parses models.
func Register(c *Cipher) {
	schema.RegisterSerializer(SerializerName, Serializer{Cipher: c})
}

func (s Serializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	fv := reflect.New(field.FieldType).Elem()
	if dbValue != nil {
		var stored string
		switch v := dbValue.(type) {
		case []byte:
			stored = string(v)
		case string:
			stored = v
		default:
			return fmt.Errorf("encrypted serializer: unsupported db value %T", dbValue)
		}
		plain := s.open(stored)
		switch field.FieldType.Kind() {
		case reflect.String:
			fv.SetString(plain)
		case reflect.Ptr:
			fv.Set(reflect.ValueOf(&plain))
		default:
			return fmt.Errorf("encrypted serializer: unsupported field type %s", field.FieldType)
		}
	}
	field.ReflectValueOf(ctx, dst).Set(fv)
	return nil
}

func (s Serializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	var plain string
	nullable := false
	switch v := fieldValue.(type) {
	case string:
		plain = v
	case *string:
		nullable = true
		if v == nil {
			return nil, nil
		}
		plain = *v
	default:
		return nil, fmt.Errorf("encrypted serializer: unsupported value %T", fieldValue)
	}
	if plain == "" {
		if nullable {
			return nil, nil
		}
		return "", nil
	}
	return s.Cipher.Encrypt(plain)
}

func (s Serializer) open(stored string) string {
	if stored == "" || s.Cipher == nil {
		return stored
	}
	plain, err := s.Cipher.Decrypt(stored)
	if err != nil {
		return stored
	}
	return plain
}
