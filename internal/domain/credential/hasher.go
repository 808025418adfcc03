// Package credential: hash y verificación de contraseñas con sal aleatoria y derivación iterada (PBKDF2).
//
// Formato persistido (autodescriptivo, versionado por el esquema):
//
//	$<esquema>$<iteraciones>$<base64(sal ‖ digest)>
//
// Con esquema "bcryptsim" es idéntico al formato heredado de la aplicación de escritorio
// ($bcryptsim$10000$...), por lo que las cuentas existentes siguen verificando.
package credential

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Parámetros fijos del formato.
const (
	SaltSize          = 16
	HashSize          = 20
	DefaultIterations = 10000

	// maxIterations acota el costo de verificar un hash almacenado manipulado.
	maxIterations = 10_000_000
)

// Esquemas soportados.
const (
	SchemeBcryptSim    = "bcryptsim"     // PBKDF2-HMAC-SHA1 (formato heredado, por defecto)
	SchemePBKDF2SHA256 = "pbkdf2-sha256" // PBKDF2-HMAC-SHA256, misma estructura
	SchemeBcrypt       = "bcrypt"        // cadenas $2a$/$2b$/$2y$ de golang.org/x/crypto/bcrypt
)

var prfs = map[string]func() hash.Hash{
	SchemeBcryptSim:    sha1.New,
	SchemePBKDF2SHA256: sha256.New,
}

// Config parámetros del hasher (CREDENTIAL_SCHEME, CREDENTIAL_ITERATIONS).
type Config struct {
	Scheme     string // vacío = bcryptsim
	Iterations int    // <= 0 = DefaultIterations
	BcryptCost int    // solo para SchemeBcrypt; <= 0 = bcrypt.DefaultCost
}

// Hasher genera y verifica cadenas de credenciales. Sin estado mutable: seguro para uso concurrente.
type Hasher struct {
	scheme     string
	iterations int
	bcryptCost int
}

// NewHasher construye el hasher validando el esquema configurado.
func NewHasher(cfg Config) (*Hasher, error) {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = SchemeBcryptSim
	}
	if _, ok := prfs[scheme]; !ok && scheme != SchemeBcrypt {
		return nil, fmt.Errorf("credential: esquema desconocido %q", scheme)
	}
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if iterations > maxIterations {
		return nil, fmt.Errorf("credential: iteraciones fuera de rango (%d)", iterations)
	}
	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("credential: costo bcrypt fuera de rango (%d)", cost)
	}
	return &Hasher{scheme: scheme, iterations: iterations, bcryptCost: cost}, nil
}

// NewDefaultHasher hasher con el formato heredado: bcryptsim, 10000 iteraciones.
func NewDefaultHasher() *Hasher {
	return &Hasher{scheme: SchemeBcryptSim, iterations: DefaultIterations, bcryptCost: bcrypt.DefaultCost}
}

// Scheme devuelve el esquema con el que se generan los hashes nuevos.
func (h *Hasher) Scheme() string { return h.scheme }

// Hash genera una sal aleatoria de 16 bytes y devuelve la cadena codificada.
// Para los esquemas PBKDF2 solo falla si la fuente de entropía falla.
func (h *Hasher) Hash(secret string) (string, error) {
	if h.scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(secret), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("credential: bcrypt: %w", err)
		}
		return string(b), nil
	}
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credential: generar sal: %w", err)
	}
	return h.encode(secret, salt), nil
}

// HashWithSalt variante determinista con sal inyectada (exactamente SaltSize bytes).
func (h *Hasher) HashWithSalt(secret string, salt []byte) (string, error) {
	if h.scheme == SchemeBcrypt {
		return "", fmt.Errorf("credential: bcrypt no admite sal inyectada")
	}
	if len(salt) != SaltSize {
		return "", fmt.Errorf("credential: la sal debe tener %d bytes, tiene %d", SaltSize, len(salt))
	}
	return h.encode(secret, salt), nil
}

func (h *Hasher) encode(secret string, salt []byte) string {
	digest := pbkdf2.Key([]byte(secret), salt, h.iterations, HashSize, prfs[h.scheme])

	raw := make([]byte, 0, SaltSize+HashSize)
	raw = append(raw, salt...)
	raw = append(raw, digest...)

	return "$" + h.scheme + "$" + strconv.Itoa(h.iterations) + "$" + base64.StdEncoding.EncodeToString(raw)
}

// Verify compara secret contra la cadena almacenada. Nunca entra en pánico:
// cualquier cadena malformada, esquema desconocido o fallo de parseo devuelve false.
// La comparación del digest es de tiempo constante.
func (h *Hasher) Verify(secret, encoded string) bool {
	p, ok := parse(encoded)
	if !ok {
		return false
	}
	if p.bcrypt {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(secret)) == nil
	}
	candidate := pbkdf2.Key([]byte(secret), p.salt, p.iterations, HashSize, prfs[p.scheme])
	return subtle.ConstantTimeCompare(p.digest, candidate) == 1
}

// NeedsRehash indica si la cadena almacenada fue generada con parámetros distintos
// a los configurados (o es ilegible) y conviene regenerarla tras un login exitoso.
func (h *Hasher) NeedsRehash(encoded string) bool {
	p, ok := parse(encoded)
	if !ok {
		return true
	}
	if h.scheme == SchemeBcrypt {
		if !p.bcrypt {
			return true
		}
		cost, err := bcrypt.Cost([]byte(encoded))
		return err != nil || cost != h.bcryptCost
	}
	return p.scheme != h.scheme || p.iterations != h.iterations
}

type parsed struct {
	scheme     string
	bcrypt     bool
	iterations int
	salt       []byte
	digest     []byte
}

// parse separa $esquema$iteraciones$payload. El primer segmento debe ser vacío.
func parse(encoded string) (parsed, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != "" {
		return parsed{}, false
	}
	tag := parts[1]
	if isBcryptTag(tag) {
		return parsed{scheme: SchemeBcrypt, bcrypt: true}, true
	}
	if _, ok := prfs[tag]; !ok {
		return parsed{}, false
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 || iterations > maxIterations {
		return parsed{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(raw) != SaltSize+HashSize {
		return parsed{}, false
	}
	return parsed{
		scheme:     tag,
		iterations: iterations,
		salt:       raw[:SaltSize],
		digest:     raw[SaltSize:],
	}, true
}

func isBcryptTag(tag string) bool {
	return tag == "2a" || tag == "2b" || tag == "2y"
}
