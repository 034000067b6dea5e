package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/db"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/models"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/storage"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/tasks"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/video"
)

const propertiesCollection = "properties"

const (
	imagesFolder = "properties/images"
	videosFolder = "properties/videos"
)

// MediaFile is one uploaded media buffer.
type MediaFile struct {
	Name string
	Data []byte
}

// PropertyMedia carries the media files of an add/update request.
type PropertyMedia struct {
	Images []MediaFile
	Videos []MediaFile
}

// PropertyInput carries property fields. Zero values mean "not
// provided" and fall back to existing values on update.
type PropertyInput struct {
	Title           string
	Location        string
	Description     string
	Price           *float64
	TransactionType string
	Type            string
	Duration        string
	Bedrooms        *int
	Toilets         *int
	Area            string
	Features        []string
	YoutubeVideos   []string
}

// FilterOptions are the public search filters.
type FilterOptions struct {
	TransactionType string
	States          []string
	Types           []string
	PriceRange      string
	Search          string
}

// AgentWithProperties bundles an agent's identity, profile and listings.
type AgentWithProperties struct {
	Agent      models.EnrichedAgent `json:"agent"`
	Properties []models.Property    `json:"properties"`
}

// IPropertyService defines the interface for property operations.
type IPropertyService interface {
	AddProperty(ctx context.Context, agentID string, input PropertyInput, media PropertyMedia) (*models.Property, error)
	UpdateProperty(ctx context.Context, propertyID primitive.ObjectID, agentID string, input PropertyInput, media PropertyMedia) (*models.Property, error)
	DeleteProperty(ctx context.Context, propertyID primitive.ObjectID, agentID string) error
	DeleteImages(ctx context.Context, propertyID primitive.ObjectID, imageURLs []string) ([]string, error)
	DeleteVideos(ctx context.Context, propertyID primitive.ObjectID, videoURLs []string) ([]string, error)
	DeleteYouTubeLinks(ctx context.Context, propertyID primitive.ObjectID, links []string) ([]string, error)
	GetSingleProperty(ctx context.Context, propertyID primitive.ObjectID) (*models.Property, *models.EnrichedAgent, error)
	GetAllPropertiesWithAgents(ctx context.Context) ([]models.EnrichedProperty, error)
	GetMyProperties(ctx context.Context, agentID string) (*AgentWithProperties, error)
	GetPublicAgentWithProperties(ctx context.Context, profileID primitive.ObjectID) (*AgentWithProperties, error)
	Filter(ctx context.Context, opts FilterOptions) ([]models.Property, error)
}

// propertyService implements IPropertyService.
type propertyService struct {
	db         *mongo.Database
	cfg        *config.Config
	enrichment IEnrichmentService
	storage    storage.Uploader
	video      video.Platform
	taskClient tasks.IClient
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(
	database *mongo.Database,
	cfg *config.Config,
	enrichment IEnrichmentService,
	uploader storage.Uploader,
	videoPlatform video.Platform,
	taskClient tasks.IClient,
) IPropertyService {
	return &propertyService{
		db:         database,
		cfg:        cfg,
		enrichment: enrichment,
		storage:    uploader,
		video:      videoPlatform,
		taskClient: taskClient,
	}
}

// NormalizeRooms applies the land rule: land parcels have no bedrooms
// or toilets, whatever the caller sent.
func NormalizeRooms(propertyType string, bedrooms, toilets int) (int, int) {
	if strings.EqualFold(strings.TrimSpace(propertyType), "land") {
		return 0, 0
	}
	if bedrooms < 0 {
		bedrooms = 0
	}
	if toilets < 0 {
		toilets = 0
	}
	return bedrooms, toilets
}

// videoDescription builds the platform description the way listings
// have always been published: feature list, or a location/price line.
func videoDescription(input PropertyInput) string {
	if len(input.Features) > 0 {
		return strings.Join(input.Features, ", ")
	}
	price := 0.0
	if input.Price != nil {
		price = *input.Price
	}
	return fmt.Sprintf("Property in %s priced at ₦%.0f", input.Location, price)
}

// uploadMedia pushes images and videos to storage (videos additionally
// to the video platform) and returns the URL lists plus content hashes.
// knownHashes suppresses re-upload of buffers already attached.
func (s *propertyService) uploadMedia(ctx context.Context, input PropertyInput, media PropertyMedia, knownHashes map[string]struct{}) (images, videos, youtubeLinks, hashes []string, err error) {
	for _, file := range media.Images {
		hash := utils.ContentHash(file.Data)
		if _, dup := knownHashes[hash]; dup {
			log.Printf("Skipping duplicate image upload %s (hash %s)", file.Name, hash[:12])
			continue
		}
		url, uploadErr := s.storage.Upload(ctx, file.Data, imagesFolder)
		if uploadErr != nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: image %s: %v", ErrUpload, file.Name, uploadErr)
		}
		knownHashes[hash] = struct{}{}
		images = append(images, url)
		hashes = append(hashes, hash)
	}

	for _, file := range media.Videos {
		hash := utils.ContentHash(file.Data)
		if _, dup := knownHashes[hash]; dup {
			log.Printf("Skipping duplicate video upload %s (hash %s)", file.Name, hash[:12])
			continue
		}
		url, uploadErr := s.storage.Upload(ctx, file.Data, videosFolder)
		if uploadErr != nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: video %s: %v", ErrUpload, file.Name, uploadErr)
		}

		title := strings.TrimSpace(input.Title)
		if title == "" {
			title = "Property Video"
		}
		videoID, insertErr := s.video.Insert(ctx, title, videoDescription(input),
			[]string{"real estate", "property", "house", "land"}, "", bytes.NewReader(file.Data))
		if insertErr != nil {
			return nil, nil, nil, nil, fmt.Errorf("%w: video platform %s: %v", ErrUpload, file.Name, insertErr)
		}

		knownHashes[hash] = struct{}{}
		videos = append(videos, url)
		youtubeLinks = append(youtubeLinks, video.WatchURL(videoID))
		hashes = append(hashes, hash)
	}

	return images, videos, youtubeLinks, hashes, nil
}

// AddProperty uploads the media, applies the land rule and inserts the
// listing. At least one image or video is required.
func (s *propertyService) AddProperty(ctx context.Context, agentID string, input PropertyInput, media PropertyMedia) (*models.Property, error) {
	if agentID == "" {
		return nil, fmt.Errorf("%w: agent id missing", ErrValidation)
	}
	if len(media.Images) == 0 && len(media.Videos) == 0 {
		return nil, fmt.Errorf("%w: at least one image or video is required", ErrValidation)
	}

	images, videos, youtubeLinks, hashes, err := s.uploadMedia(ctx, input, media, map[string]struct{}{})
	if err != nil {
		return nil, err
	}

	bedrooms, toilets := 0, 0
	if input.Bedrooms != nil {
		bedrooms = *input.Bedrooms
	}
	if input.Toilets != nil {
		toilets = *input.Toilets
	}
	bedrooms, toilets = NormalizeRooms(input.Type, bedrooms, toilets)

	price := 0.0
	if input.Price != nil {
		price = *input.Price
	}

	now := time.Now().UTC()
	property := &models.Property{
		Agent:           agentID,
		Title:           input.Title,
		Location:        input.Location,
		Description:     input.Description,
		Price:           price,
		TransactionType: input.TransactionType,
		Type:            input.Type,
		Duration:        input.Duration,
		Bedrooms:        bedrooms,
		Toilets:         toilets,
		Area:            input.Area,
		Features:        utils.SplitList(input.Features),
		Images:          images,
		Videos:          videos,
		YoutubeVideos:   youtubeLinks,
		FileHashes:      hashes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if property.Features == nil {
		property.Features = []string{}
	}
	if property.Images == nil {
		property.Images = []string{}
	}
	if property.Videos == nil {
		property.Videos = []string{}
	}
	if property.YoutubeVideos == nil {
		property.YoutubeVideos = []string{}
	}

	coll := s.db.Collection(propertiesCollection)
	operation := func() error {
		result, insertErr := coll.InsertOne(ctx, property)
		if insertErr != nil {
			return insertErr
		}
		property.ID = result.InsertedID.(primitive.ObjectID)
		return nil
	}
	if err := db.Try(operation); err != nil {
		return nil, fmt.Errorf("failed to insert property for agent %s: %w", agentID, err)
	}
	return property, nil
}

// UpdateProperty merges provided fields into an owned listing and
// appends any new media. The land rule is re-applied against the
// effective type.
func (s *propertyService) UpdateProperty(ctx context.Context, propertyID primitive.ObjectID, agentID string, input PropertyInput, media PropertyMedia) (*models.Property, error) {
	coll := s.db.Collection(propertiesCollection)

	var existing models.Property
	err := coll.FindOne(ctx, bson.M{"_id": propertyID, "agent": agentID}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: property not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load property %s: %w", propertyID.Hex(), err)
	}

	knownHashes := make(map[string]struct{}, len(existing.FileHashes))
	for _, h := range existing.FileHashes {
		knownHashes[h] = struct{}{}
	}
	images, videos, youtubeLinks, hashes, err := s.uploadMedia(ctx, input, media, knownHashes)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Location != "" {
		set["location"] = input.Location
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.TransactionType != "" {
		set["transaction_type"] = input.TransactionType
	}
	if input.Duration != "" {
		set["duration"] = input.Duration
	}
	if input.Type != "" {
		set["type"] = input.Type
	}
	if input.Area != "" {
		set["area"] = input.Area
	}
	if input.Features != nil {
		set["features"] = utils.SplitList(input.Features)
	}
	if input.YoutubeVideos != nil {
		set["youtube_videos"] = utils.SplitList(input.YoutubeVideos)
	}

	// Land rule against the effective type.
	effectiveType := existing.Type
	if input.Type != "" {
		effectiveType = input.Type
	}
	bedrooms := existing.Bedrooms
	if input.Bedrooms != nil {
		bedrooms = *input.Bedrooms
	}
	toilets := existing.Toilets
	if input.Toilets != nil {
		toilets = *input.Toilets
	}
	set["bedrooms"], set["toilets"] = NormalizeRooms(effectiveType, bedrooms, toilets)

	update := bson.M{"$set": set}
	push := bson.M{}
	if len(images) > 0 {
		push["images"] = bson.M{"$each": images}
	}
	if len(videos) > 0 {
		push["videos"] = bson.M{"$each": videos}
	}
	// New platform links only apply when the caller did not replace the
	// whole list.
	if len(youtubeLinks) > 0 && input.YoutubeVideos == nil {
		push["youtube_videos"] = bson.M{"$each": youtubeLinks}
	}
	if len(push) > 0 {
		update["$push"] = push
	}
	if len(hashes) > 0 {
		update["$addToSet"] = bson.M{"file_hashes": bson.M{"$each": hashes}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Property
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": propertyID, "agent": agentID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: property not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update property %s: %w", propertyID.Hex(), err)
	}
	return &updated, nil
}

// enqueueCleanup schedules remote deletion of detached media, logging
// rather than failing the request when the queue is unavailable.
func (s *propertyService) enqueueCleanup(urls []string, folder, resourceType string) {
	if len(urls) == 0 {
		return
	}
	if err := tasks.EnqueueMediaCleanup(s.taskClient, urls, folder, resourceType); err != nil {
		log.Printf("WARN: failed to enqueue media cleanup for %d urls in %s: %v", len(urls), folder, err)
	}
}

// DeleteProperty removes an owned listing and schedules cleanup of its
// stored media.
func (s *propertyService) DeleteProperty(ctx context.Context, propertyID primitive.ObjectID, agentID string) error {
	var deleted models.Property
	err := s.db.Collection(propertiesCollection).
		FindOneAndDelete(ctx, bson.M{"_id": propertyID, "agent": agentID}).
		Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: property not found", ErrNotFound)
		}
		return fmt.Errorf("failed to delete property %s: %w", propertyID.Hex(), err)
	}

	s.enqueueCleanup(deleted.Images, imagesFolder, "image")
	s.enqueueCleanup(deleted.Videos, videosFolder, "video")
	return nil
}

// removeFromList pulls urls out of a media list field and returns the
// remaining values.
func (s *propertyService) removeFromList(ctx context.Context, propertyID primitive.ObjectID, field string, urls []string) ([]models.Property, error) {
	coll := s.db.Collection(propertiesCollection)

	update := bson.M{
		"$pull": bson.M{field: bson.M{"$in": urls}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Property
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": propertyID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: property not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to remove %s from property %s: %w", field, propertyID.Hex(), err)
	}
	return []models.Property{updated}, nil
}

// DeleteImages detaches image URLs and schedules their remote cleanup.
// Returns the remaining image list.
func (s *propertyService) DeleteImages(ctx context.Context, propertyID primitive.ObjectID, imageURLs []string) ([]string, error) {
	if len(imageURLs) == 0 {
		return nil, fmt.Errorf("%w: image URLs required", ErrValidation)
	}
	updated, err := s.removeFromList(ctx, propertyID, "images", imageURLs)
	if err != nil {
		return nil, err
	}
	s.enqueueCleanup(imageURLs, imagesFolder, "image")
	return updated[0].Images, nil
}

// DeleteVideos detaches video URLs and schedules their remote cleanup.
// Returns the remaining video list.
func (s *propertyService) DeleteVideos(ctx context.Context, propertyID primitive.ObjectID, videoURLs []string) ([]string, error) {
	if len(videoURLs) == 0 {
		return nil, fmt.Errorf("%w: video URLs required", ErrValidation)
	}
	updated, err := s.removeFromList(ctx, propertyID, "videos", videoURLs)
	if err != nil {
		return nil, err
	}
	s.enqueueCleanup(videoURLs, videosFolder, "video")
	return updated[0].Videos, nil
}

// DeleteYouTubeLinks detaches platform links from the listing. The
// videos stay on the platform; only the references are removed.
func (s *propertyService) DeleteYouTubeLinks(ctx context.Context, propertyID primitive.ObjectID, links []string) ([]string, error) {
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: YouTube URLs required", ErrValidation)
	}
	updated, err := s.removeFromList(ctx, propertyID, "youtube_videos", links)
	if err != nil {
		return nil, err
	}
	return updated[0].YoutubeVideos, nil
}

// GetSingleProperty atomically bumps the view counter and returns the
// listing with its agent enriched.
func (s *propertyService) GetSingleProperty(ctx context.Context, propertyID primitive.ObjectID) (*models.Property, *models.EnrichedAgent, error) {
	coll := s.db.Collection(propertiesCollection)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var property models.Property
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": propertyID},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, fmt.Errorf("%w: property not found", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load property %s: %w", propertyID.Hex(), err)
	}

	agent := &models.EnrichedAgent{
		User: s.enrichment.EnrichOne(ctx, property.Agent),
	}
	var profile models.AgentProfile
	err = s.db.Collection(profilesCollection).FindOne(ctx, bson.M{"user_id": property.Agent}).Decode(&profile)
	if err == nil {
		agent.Profile = &profile
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, fmt.Errorf("failed to load profile for agent %s: %w", property.Agent, err)
	}

	return &property, agent, nil
}

// GetAllPropertiesWithAgents returns every listing, newest first, each
// with its owning agent attached. Agent identities come from a single
// batched Auth call over the deduplicated owner set.
func (s *propertyService) GetAllPropertiesWithAgents(ctx context.Context) ([]models.EnrichedProperty, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	agentIDs := make([]string, 0, len(properties))
	for _, p := range properties {
		agentIDs = append(agentIDs, p.Agent)
	}
	userMap := s.enrichment.EnrichBatch(ctx, agentIDs)

	profileMap := make(map[string]*models.AgentProfile)
	if len(agentIDs) > 0 {
		profCursor, err := s.db.Collection(profilesCollection).Find(ctx, bson.M{"user_id": bson.M{"$in": agentIDs}})
		if err != nil {
			return nil, fmt.Errorf("failed to query agent profiles: %w", err)
		}
		defer profCursor.Close(ctx)
		var profiles []models.AgentProfile
		if err := profCursor.All(ctx, &profiles); err != nil {
			return nil, fmt.Errorf("failed to decode agent profiles: %w", err)
		}
		for i := range profiles {
			profileMap[profiles[i].UserID] = &profiles[i]
		}
	}

	enriched := make([]models.EnrichedProperty, 0, len(properties))
	for _, p := range properties {
		enriched = append(enriched, models.EnrichedProperty{
			Property: p,
			Agent: models.EnrichedAgent{
				User:    userMap[p.Agent],
				Profile: profileMap[p.Agent],
			},
		})
	}
	return enriched, nil
}

func (s *propertyService) propertiesByAgent(ctx context.Context, agentID string) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, bson.M{"agent": agentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for agent %s: %w", agentID, err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties for agent %s: %w", agentID, err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}

// GetMyProperties returns the calling agent with all their listings.
func (s *propertyService) GetMyProperties(ctx context.Context, agentID string) (*AgentWithProperties, error) {
	if agentID == "" {
		return nil, fmt.Errorf("%w: agent id missing", ErrValidation)
	}

	var profile models.AgentProfile
	err := s.db.Collection(profilesCollection).FindOne(ctx, bson.M{"user_id": agentID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: agent profile not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load profile for agent %s: %w", agentID, err)
	}

	properties, err := s.propertiesByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return &AgentWithProperties{
		Agent: models.EnrichedAgent{
			User:    s.enrichment.EnrichOne(ctx, agentID),
			Profile: &profile,
		},
		Properties: properties,
	}, nil
}

// GetPublicAgentWithProperties resolves a profile document id to the
// agent's public view plus their listings.
func (s *propertyService) GetPublicAgentWithProperties(ctx context.Context, profileID primitive.ObjectID) (*AgentWithProperties, error) {
	var profile models.AgentProfile
	err := s.db.Collection(profilesCollection).FindOne(ctx, bson.M{"_id": profileID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: agent profile not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load profile %s: %w", profileID.Hex(), err)
	}

	properties, err := s.propertiesByAgent(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	return &AgentWithProperties{
		Agent: models.EnrichedAgent{
			User:    s.enrichment.EnrichOne(ctx, profile.UserID),
			Profile: &profile,
		},
		Properties: properties,
	}, nil
}

// BuildPropertyFilter translates the public search filters into a
// MongoDB query document.
func BuildPropertyFilter(opts FilterOptions) bson.M {
	query := bson.M{}

	if opts.TransactionType != "" {
		query["transaction_type"] = primitive.Regex{Pattern: opts.TransactionType, Options: "i"}
	}

	if states := utils.SplitList(opts.States); len(states) > 0 {
		patterns := make(bson.A, 0, len(states))
		for _, st := range states {
			patterns = append(patterns, primitive.Regex{Pattern: st, Options: "i"})
		}
		query["location"] = bson.M{"$in": patterns}
	}

	if types := utils.SplitList(opts.Types); len(types) > 0 {
		patterns := make(bson.A, 0, len(types))
		for _, tp := range types {
			patterns = append(patterns, primitive.Regex{Pattern: tp, Options: "i"})
		}
		query["type"] = bson.M{"$in": patterns}
	}

	if opts.PriceRange != "" {
		if pr, ok := utils.ParsePriceRange(opts.PriceRange); ok {
			if pr.Max < 0 {
				query["price"] = bson.M{"$gte": pr.Min}
			} else {
				query["price"] = bson.M{"$gte": pr.Min, "$lte": pr.Max}
			}
		}
	}

	if opts.Search != "" {
		regex := primitive.Regex{Pattern: opts.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"location": regex},
			bson.M{"type": regex},
		}
	}

	return query
}

// Filter searches listings by the public filters, newest first.
func (s *propertyService) Filter(ctx context.Context, opts FilterOptions) ([]models.Property, error) {
	query := BuildPropertyFilter(opts)

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to filter properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode filtered properties: %w", err)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return properties, nil
}
