package services

type WateringBucket int

const (
	BucketLow WateringBucket = iota
	BucketMediumLow
	BucketMedium
	BucketHigh
)

const (
	bucketLowMax       = 20
	bucketMediumLowMax = 40
	bucketMediumMax    = 70
)

// BucketFor maps wateringK to one of four buckets. Each upper bound is
// inclusive: 20 is low, 21 is medium-low.
func BucketFor(wateringK int) WateringBucket {
	switch {
	case wateringK <= bucketLowMax:
		return BucketLow
	case wateringK <= bucketMediumLowMax:
		return BucketMediumLow
	case wateringK <= bucketMediumMax:
		return BucketMedium
	default:
		return BucketHigh
	}
}

func (bucket WateringBucket) String() string {
	switch bucket {
	case BucketLow:
		return "low"
	case BucketMediumLow:
		return "medium_low"
	case BucketMedium:
		return "medium"
	default:
		return "high"
	}
}

func (bucket WateringBucket) CSSClass() string {
	switch bucket {
	case BucketLow:
		return "category-low"
	case BucketMediumLow:
		return "category-medium-low"
	case BucketMedium:
		return "category-medium"
	default:
		return "category-high"
	}
}

// Category is the display form of a bucket: translation keys for the badge
// label and the advice text, plus the badge CSS class.
type Category struct {
	Bucket    WateringBucket
	LabelKey  string
	AdviceKey string
	CSSClass  string
}

func PlantTypeCategory(wateringK int) Category {
	return newCategory("plant_type", BucketFor(wateringK))
}

func MaterialCategory(wateringK int) Category {
	return newCategory("material", BucketFor(wateringK))
}

func newCategory(prefix string, bucket WateringBucket) Category {
	return Category{
		Bucket:    bucket,
		LabelKey:  prefix + ".category." + bucket.String(),
		AdviceKey: prefix + ".advice." + bucket.String(),
		CSSClass:  bucket.CSSClass(),
	}
}
