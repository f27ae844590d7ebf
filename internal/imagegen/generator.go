// Package imagegen produces AI food photos for menu items and keeps the
// resulting PNG bytes in an in-memory cache with a time-based expiry.
package imagegen

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/elcappfet/menuapi/internal/menu"
)

// DefaultTTL is how long a generated image stays cached.
const DefaultTTL = 2 * time.Hour

// ImageClient is the minimal interface needed to generate one picture. It
// mirrors the CreateImage method of the OpenAI client so any compatible
// backend can be adapted, and tests can stub it.
type ImageClient interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// Generator turns a MenuItem into PNG bytes, serving repeats from its cache.
type Generator struct {
	Client ImageClient
	// Model names the image model; empty selects the client default.
	Model string
	Cache *Cache
}

// NewGenerator wires a generator around client with a cache of the given
// TTL. Zero ttl means DefaultTTL.
func NewGenerator(client ImageClient, model string, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Generator{Client: client, Model: model, Cache: NewCache(ttl)}
}

// CacheKey derives the content hash identifying one menu item's image.
func CacheKey(item menu.MenuItem) string {
	h := sha256.Sum256([]byte(item.Type + "\n\n" + item.Contenu + "\n\n" + item.Prix))
	return hex.EncodeToString(h[:])
}

// Generate returns PNG bytes for item, from cache when possible. The second
// return value reports whether the image was served from cache. Two
// concurrent misses for the same key may both generate; the second write
// wins, which costs a redundant call but corrupts nothing.
func (g *Generator) Generate(ctx context.Context, item menu.MenuItem) ([]byte, bool, error) {
	key := CacheKey(item)
	if b, ok := g.Cache.Get(key); ok {
		log.Debug().Str("key", key).Msg("image servie depuis le cache")
		return b, true, nil
	}
	if n := g.Cache.Sweep(); n > 0 {
		log.Debug().Int("removed", n).Msg("nettoyage du cache d'images")
	}

	log.Info().Str("contenu", item.Contenu).Msg("génération d'image")
	resp, err := g.Client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         buildPrompt(item),
		Model:          g.Model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, false, fmt.Errorf("create image: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, false, errors.New("no image in response")
	}
	b, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}

	g.Cache.Put(key, b)
	log.Info().Str("key", key).Msg("image générée et mise en cache")
	return b, false, nil
}

// buildPrompt writes the generation prompt from the menu data. Kept in
// French to match the dish descriptions it embeds.
func buildPrompt(item menu.MenuItem) string {
	return fmt.Sprintf(
		"Crée une image appétissante et professionnelle d'un plat %s dans un restaurant d'entreprise suisse moderne. "+
			"Plat: %s. Prix: %s. "+
			"Style: haute résolution, lumière naturelle, composition centrée, arrière-plan de cuisine moderne épuré. "+
			"Sans logo, sans texte, sans personne.",
		item.Type, item.Contenu, item.Prix)
}
